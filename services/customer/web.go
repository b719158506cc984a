package customer

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
	"github.com/MarcGrol/storefront/services/storefront/storefrontclient"
)

const (
	SessionCookieName = "customerAccessToken"
	sessionCookieAge  = 30 * 24 * time.Hour
)

type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type webService struct {
	service       *service
	logger        mylog.Logger
	secureCookies bool
}

func NewService(client storefrontclient.StorefrontClient, secureCookies bool) *webService {
	logger := mylog.New("customer")
	return &webService{
		service:       newService(client, logger),
		logger:        logger,
		secureCookies: secureCookies,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/auth", s.authGuardPage()).Methods("GET")
	router.HandleFunc("/auth/login", s.loginPage()).Methods("POST")
}

// authGuardPage sends customers that are already logged in back to the shop.
func (s *webService) authGuardPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cookie, err := r.Cookie(SessionCookieName)
		if err == nil && cookie.Value != "" {
			http.Redirect(w, r, myhttp.HostnameWithScheme(r)+"/", http.StatusSeeOther)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Not logged in",
		})
	}
}

func (s *webService) loginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		form := LoginForm{}
		err = formcodec.NewDecoder().Decode(&form, r.PostForm)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		token, err := s.service.login(c, form.Email, form.Password)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    token.AccessToken,
			Path:     "/",
			MaxAge:   int(sessionCookieAge.Seconds()),
			HttpOnly: true,
			Secure:   s.secureCookies,
			SameSite: http.SameSiteStrictMode,
		})

		http.Redirect(w, r, myhttp.HostnameWithScheme(r)+"/account", http.StatusSeeOther)
	}
}
