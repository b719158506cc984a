package cart

import (
	"context"
	"net/http"
	"time"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/services/storefront/storefrontclient"
)

const (
	CartCookieName = "cartId"
	cartCookieAge  = 30 * 24 * time.Hour
)

type LineForm struct {
	MerchandiseID string `form:"merchandiseId"`
	Quantity      int    `form:"quantity"`
}

type webService struct {
	service       *service
	logger        mylog.Logger
	secureCookies bool
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(store mystore.Store[Cart], client storefrontclient.StorefrontClient, pub mypublisher.Publisher, nower mytime.Nower, secureCookies bool) *webService {
	logger := mylog.New("cart")
	return &webService{
		service:       newService(store, client, pub, nower, logger),
		logger:        logger,
		secureCookies: secureCookies,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/cart", s.initializeCartPage()).Methods("POST")
	router.HandleFunc("/api/cart", s.getCartPage()).Methods("GET")
	router.HandleFunc("/api/cart/lines", s.addItemPage()).Methods("POST")
	router.HandleFunc("/api/cart/lines", s.updateItemPage()).Methods("PUT")
	router.HandleFunc("/api/cart/lines", s.removeItemPage()).Methods("DELETE")

	err := s.service.CreateTopics(c)
	if err != nil {
		return err
	}

	return nil
}

func (s *webService) initializeCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		rememberedCartID := rememberedCartID(r)

		cart, created, err := s.service.initialize(c, rememberedCartID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		if cart.ID != rememberedCartID {
			http.SetCookie(w, &http.Cookie{
				Name:     CartCookieName,
				Value:    cart.ID,
				Path:     "/",
				MaxAge:   int(cartCookieAge.Seconds()),
				HttpOnly: true,
				Secure:   s.secureCookies,
				SameSite: http.SameSiteLaxMode,
			})
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		errorWriter.Write(c, w, status, cart)
	}
}

func (s *webService) getCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cart, err := s.service.getCart(c, rememberedCartID(r))
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cart)
	}
}

func (s *webService) addItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		line, err := parseLineForm(r)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		cart, err := s.service.addItem(c, rememberedCartID(r), line.MerchandiseID, line.Quantity)
		if err != nil {
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cart)
	}
}

func (s *webService) updateItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		line, err := parseLineForm(r)
		if err != nil {
			errorWriter.WriteError(c, w, 5, err)
			return
		}

		cart, err := s.service.updateItem(c, rememberedCartID(r), line.MerchandiseID, line.Quantity)
		if err != nil {
			errorWriter.WriteError(c, w, 6, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cart)
	}
}

func (s *webService) removeItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		merchandiseID := r.URL.Query().Get("merchandiseId")
		if merchandiseID == "" {
			errorWriter.WriteError(c, w, 7, myerrors.NewInvalidInputErrorf("missing merchandiseId"))
			return
		}

		cart, err := s.service.removeItem(c, rememberedCartID(r), merchandiseID)
		if err != nil {
			errorWriter.WriteError(c, w, 8, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, cart)
	}
}

func rememberedCartID(r *http.Request) string {
	cookie, err := r.Cookie(CartCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func parseLineForm(r *http.Request) (LineForm, error) {
	err := r.ParseForm()
	if err != nil {
		return LineForm{}, myerrors.NewInvalidInputError(err)
	}

	line := LineForm{}
	err = formcodec.NewDecoder().Decode(&line, r.Form)
	if err != nil {
		return LineForm{}, myerrors.NewInvalidInputError(err)
	}
	if line.MerchandiseID == "" {
		return LineForm{}, myerrors.NewInvalidInputErrorf("missing merchandiseId")
	}
	// zero means remove on update, so an absent quantity must not decode to it
	if !r.Form.Has("quantity") {
		return LineForm{}, myerrors.NewInvalidInputErrorf("missing quantity")
	}

	return line, nil
}
