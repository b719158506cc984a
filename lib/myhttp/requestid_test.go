package myhttp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/storefront/lib/myuuid"
)

func TestRequestID(t *testing.T) {
	var received string
	handler := func(uuider myuuid.UUIDer) http.Handler {
		return RequestID(uuider)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			received = r.Header.Get(RequestIDHeader)
		}))
	}

	t.Run("Generated when missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uuider := myuuid.NewMockUUIDer(ctrl)
		uuider.EXPECT().Create().Return("abc")

		response := httptest.NewRecorder()
		handler(uuider).ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "abc", received)
		assert.Equal(t, "abc", response.Header().Get(RequestIDHeader))
	})

	t.Run("Kept when present", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(RequestIDHeader, "from-client")
		response := httptest.NewRecorder()
		handler(myuuid.NewMockUUIDer(ctrl)).ServeHTTP(response, request)

		assert.Equal(t, "from-client", received)
		assert.Equal(t, "from-client", response.Header().Get(RequestIDHeader))
	})

	t.Run("Real uuids", func(t *testing.T) {
		response := httptest.NewRecorder()
		handler(myuuid.RealUUIDer{}).ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, received, 36)
	})
}
