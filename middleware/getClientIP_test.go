package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		xff    string
		xri    string
		remote string
		want   string
	}{
		{name: "forwarded single", xff: "203.0.113.9", remote: "10.0.0.1:443", want: "203.0.113.9"},
		{name: "forwarded chain uses first", xff: "203.0.113.9, 70.41.3.18, 150.172.238.178", remote: "10.0.0.1:443", want: "203.0.113.9"},
		{name: "forwarded with spaces", xff: "  203.0.113.9 ,70.41.3.18", remote: "10.0.0.1:443", want: "203.0.113.9"},
		{name: "empty forwarded falls to real ip", xff: " ,70.41.3.18", xri: "198.51.100.4", remote: "10.0.0.1:443", want: "198.51.100.4"},
		{name: "real ip", xri: "198.51.100.4", remote: "10.0.0.1:443", want: "198.51.100.4"},
		{name: "remote addr strips port", remote: "192.0.2.7:51234", want: "192.0.2.7"},
		{name: "remote addr without port", remote: "192.0.2.7", want: "192.0.2.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tt.remote
			if tt.xff != "" {
				c.Request.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				c.Request.Header.Set("X-Real-IP", tt.xri)
			}

			assert.Equal(t, tt.want, getClientIP(c))
		})
	}
}
