package cartmetrics

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mypubsub"
	"github.com/MarcGrol/storefront/services/cart/cartevents"
)

type webService struct {
	service *service
	logger  mylog.Logger
	baseURL string
}

// NewService creates the projector that turns cart events into metrics registered at reg.
func NewService(pubsub mypubsub.PubSub, reg prometheus.Registerer, baseURL string) *webService {
	logger := mylog.New("cartmetrics")
	return &webService{
		service: newService(pubsub, newMetrics(reg), logger),
		logger:  logger,
		baseURL: baseURL,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/cart/event", s.handleEventEnvelopePage()).Methods("POST")

	return s.service.Subscribe(c, s.baseURL)
}

func (s *webService) handleEventEnvelopePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := cartevents.DispatchEvent(c, r.Body, s.service)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed event",
		})
	}
}
