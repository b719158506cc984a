package warmup

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/services/cart"
)

const warmupKey = "warmup"

type webService struct {
	logger    mylog.Logger
	cartStore mystore.Store[cart.Cart]
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(cartStore mystore.Store[cart.Cart]) *webService {
	return &webService{
		logger:    mylog.New("warmup"),
		cartStore: cartStore,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")
}

func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		// opens the connection to the store before real traffic arrives
		_, _, err := s.cartStore.Get(c, warmupKey)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewUnavailableError(err))
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed warmup request",
		})
	}
}
