package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func serveWithLogger(t *testing.T, status int, identity bool) *observer.ObservedLogs {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(Logger(zap.New(core)))
	if identity {
		r.Use(func(c *gin.Context) {
			c.Set(ContextKeyUserID, "did:privy:u1")
			c.Set(ContextKeySessionID, "sess-1")
		})
	}
	r.GET("/resource", func(c *gin.Context) { c.Status(status) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))
	return logs
}

func TestLoggerLevelsByStatus(t *testing.T) {
	cases := []struct {
		status int
		want   zapcore.Level
	}{
		{http.StatusOK, zapcore.InfoLevel},
		{http.StatusNotFound, zapcore.WarnLevel},
		{http.StatusInternalServerError, zapcore.ErrorLevel},
	}
	for _, tc := range cases {
		logs := serveWithLogger(t, tc.status, false)
		entries := logs.All()
		if len(entries) != 1 {
			t.Fatalf("status %d: expected one log entry, got %d", tc.status, len(entries))
		}
		if entries[0].Level != tc.want {
			t.Errorf("status %d logged at %v, want %v", tc.status, entries[0].Level, tc.want)
		}
		fields := entries[0].ContextMap()
		if fields["status"] != int64(tc.status) {
			t.Errorf("status field = %v, want %d", fields["status"], tc.status)
		}
		if fields["path"] != "/resource" {
			t.Errorf("path field = %v", fields["path"])
		}
	}
}

func TestLoggerIncludesSessionIdentity(t *testing.T) {
	logs := serveWithLogger(t, http.StatusOK, true)
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["user_id"] != "did:privy:u1" {
		t.Fatalf("user_id field = %v, want did:privy:u1", fields["user_id"])
	}
	if fields["session_id"] != "sess-1" {
		t.Fatalf("session_id field = %v, want sess-1", fields["session_id"])
	}
}

func TestLoggerOmitsIdentityWhenAnonymous(t *testing.T) {
	logs := serveWithLogger(t, http.StatusOK, false)
	fields := logs.All()[0].ContextMap()
	if _, ok := fields["user_id"]; ok {
		t.Fatal("anonymous request must not carry a user_id field")
	}
}
