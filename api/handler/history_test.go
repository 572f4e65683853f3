package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/salesloop/pagelens/chat"
	"github.com/salesloop/pagelens/models"
)

func historyRouter(store *chat.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/conversation-history/:session_id", History(store))
	return r
}

func TestHistory_ReturnsSessionExchanges(t *testing.T) {
	store := chat.NewStore()
	sess := store.Session("")
	store.Append(sess, "qual o valor?", "O investimento é de R$ 199,90.")
	store.Append(sess, "quero comprar", "Ótima decisão!")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/conversation-history/"+sess.ID, nil)
	historyRouter(store).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp models.ConversationHistoryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.SessionID != sess.ID {
		t.Errorf("SessionID = %q, want %q", resp.SessionID, sess.ID)
	}
	if len(resp.History) != 2 {
		t.Fatalf("History = %v, want 2 exchanges", resp.History)
	}
	if resp.History[0].User != "qual o valor?" {
		t.Errorf("History[0].User = %q", resp.History[0].User)
	}
	if resp.History[1].Bot != "Ótima decisão!" {
		t.Errorf("History[1].Bot = %q", resp.History[1].Bot)
	}
}

func TestHistory_UnknownSession(t *testing.T) {
	store := chat.NewStore()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/conversation-history/no-such-session", nil)
	historyRouter(store).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != models.ErrCodeNotFound {
		t.Errorf("error = %+v, want code %s", resp.Error, models.ErrCodeNotFound)
	}
}
