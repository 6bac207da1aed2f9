package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Drolfothesgnir/markplus/highlight"
	"github.com/Drolfothesgnir/markplus/pipeline"
	"github.com/Drolfothesgnir/markplus/tmpstore"
	"github.com/Drolfothesgnir/markplus/util"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Configure the validator to use json tags for field names in errors
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}

	gin.SetMode(gin.TestMode)
	log.Logger = zerolog.Nop()
	os.Exit(m.Run())
}

var testConfig = util.Config{
	Environment:       "development",
	HTTPServerAddress: "http://localhost:8080",
	CacheTTL:          time.Minute,
	MaxDocumentSize:   256,
}

func newTestService(t *testing.T, store tmpstore.Store) *Service {
	t.Helper()

	processor, err := pipeline.New(pipeline.Config{
		Extensions: []pipeline.Extension{highlight.Extension()},
	})
	require.NoError(t, err)

	service, err := NewService(testConfig, processor, store)
	require.NoError(t, err)
	return service
}

// serve sends body as JSON to url and returns the recorded response.
func serve(t *testing.T, service *Service, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	request := httptest.NewRequest(method, url, &buf)
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	service.router.ServeHTTP(recorder, request)

	return recorder
}

func TestPing(t *testing.T) {
	service := newTestService(t, tmpstore.NewMemoryStore())

	recorder := serve(t, service, http.MethodGet, "/ping", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "pong", recorder.Body.String())
}

func TestNewService_InvalidAddress(t *testing.T) {
	config := testConfig
	config.HTTPServerAddress = "http://:8080"

	_, err := NewService(config, nil, nil)
	require.Error(t, err)
}
