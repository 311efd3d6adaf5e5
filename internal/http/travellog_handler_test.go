package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func createLog(t *testing.T, env *testEnv, token string, body gin.H) map[string]any {
	t.Helper()
	w := env.doJSON(http.MethodPost, "/api/travelLogs", token, body)
	expectStatus(t, w, http.StatusCreated)
	return decodeBody(t, w)
}

func TestTravelLogCreate(t *testing.T) {
	env := newTestEnv()
	token, userID := env.signup(t, "abhi", "a@b.com", "secret1")

	log := createLog(t, env, token, gin.H{
		"title":       "Kyoto trip",
		"destination": "Kyoto",
		"status":      "ongoing",
	})
	if log["userId"] != userID {
		t.Fatalf("expected owner %q, got %v", userID, log["userId"])
	}
	if log["status"] != "ongoing" {
		t.Fatalf("expected status ongoing, got %v", log["status"])
	}
}

func TestTravelLogCreateDefaultsToVisited(t *testing.T) {
	env := newTestEnv()
	token, _ := env.signup(t, "abhi", "a@b.com", "secret1")

	log := createLog(t, env, token, gin.H{"title": "Goa", "destination": "Goa"})
	if log["status"] != "visited" {
		t.Fatalf("expected default status visited, got %v", log["status"])
	}
}

func TestTravelLogCreateValidation(t *testing.T) {
	env := newTestEnv()
	token, _ := env.signup(t, "abhi", "a@b.com", "secret1")

	w := env.doJSON(http.MethodPost, "/api/travelLogs", token, gin.H{"title": "no destination"})
	expectStatus(t, w, http.StatusBadRequest)
	expectMsg(t, w, "Title and destination are required")

	w = env.doJSON(http.MethodPost, "/api/travelLogs", token, gin.H{
		"title":       "Goa",
		"destination": "Goa",
		"status":      "teleported",
	})
	expectStatus(t, w, http.StatusBadRequest)
	expectMsg(t, w, "Invalid status")
}

func TestTravelLogGetNotFound(t *testing.T) {
	env := newTestEnv()
	token, _ := env.signup(t, "abhi", "a@b.com", "secret1")

	w := env.doJSON(http.MethodGet, "/api/travelLogs/"+uuid.NewString(), token, nil)
	expectStatus(t, w, http.StatusNotFound)
	expectMsg(t, w, "Log not found")

	// Un id que no es UUID se trata como inexistente, no como error.
	w = env.doJSON(http.MethodGet, "/api/travelLogs/not-a-uuid", token, nil)
	expectStatus(t, w, http.StatusNotFound)
	expectMsg(t, w, "Log not found")
}

func TestTravelLogPrivateHiddenFromOthers(t *testing.T) {
	env := newTestEnv()
	ownerToken, _ := env.signup(t, "owner", "owner@b.com", "secret1")
	otherToken, _ := env.signup(t, "other", "other@b.com", "secret1")

	log := createLog(t, env, ownerToken, gin.H{"title": "Secret", "destination": "Bali"})
	id, _ := log["id"].(string)

	w := env.doJSON(http.MethodGet, "/api/travelLogs/"+id, otherToken, nil)
	expectStatus(t, w, http.StatusForbidden)
	expectMsg(t, w, "Not allowed")

	w = env.doJSON(http.MethodGet, "/api/travelLogs/"+id, ownerToken, nil)
	expectStatus(t, w, http.StatusOK)
}

func TestTravelLogPublicReadableByAnyone(t *testing.T) {
	env := newTestEnv()
	ownerToken, _ := env.signup(t, "owner", "owner@b.com", "secret1")
	otherToken, _ := env.signup(t, "other", "other@b.com", "secret1")

	log := createLog(t, env, ownerToken, gin.H{
		"title":       "Open trip",
		"destination": "Lima",
		"isPublic":    true,
	})
	id, _ := log["id"].(string)

	w := env.doJSON(http.MethodGet, "/api/travelLogs/"+id, otherToken, nil)
	expectStatus(t, w, http.StatusOK)
}

func TestTravelLogMemberCanView(t *testing.T) {
	env := newTestEnv()
	ownerToken, _ := env.signup(t, "owner", "owner@b.com", "secret1")
	memberToken, memberID := env.signup(t, "member", "member@b.com", "secret1")

	log := createLog(t, env, ownerToken, gin.H{"title": "Group", "destination": "Oslo"})
	id, _ := log["id"].(string)

	w := env.doJSON(http.MethodPut, "/api/travelLogs/"+id, ownerToken, gin.H{"members": []string{memberID}})
	expectStatus(t, w, http.StatusOK)

	w = env.doJSON(http.MethodGet, "/api/travelLogs/"+id, memberToken, nil)
	expectStatus(t, w, http.StatusOK)
}

func TestTravelLogUpdateOwnerOnly(t *testing.T) {
	env := newTestEnv()
	ownerToken, _ := env.signup(t, "owner", "owner@b.com", "secret1")
	otherToken, _ := env.signup(t, "other", "other@b.com", "secret1")

	log := createLog(t, env, ownerToken, gin.H{"title": "Trip", "destination": "Rome", "isPublic": true})
	id, _ := log["id"].(string)

	// La visibilidad pública habilita lectura, nunca escritura.
	w := env.doJSON(http.MethodPut, "/api/travelLogs/"+id, otherToken, gin.H{"title": "Hijacked"})
	expectStatus(t, w, http.StatusForbidden)
	expectMsg(t, w, "Not allowed")

	w = env.doJSON(http.MethodPut, "/api/travelLogs/"+id, ownerToken, gin.H{"title": "Renamed"})
	expectStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	if body["title"] != "Renamed" {
		t.Fatalf("expected renamed title, got %v", body["title"])
	}
}

func TestTravelLogDelete(t *testing.T) {
	env := newTestEnv()
	ownerToken, _ := env.signup(t, "owner", "owner@b.com", "secret1")
	otherToken, _ := env.signup(t, "other", "other@b.com", "secret1")

	log := createLog(t, env, ownerToken, gin.H{"title": "Trip", "destination": "Rome"})
	id, _ := log["id"].(string)

	w := env.doJSON(http.MethodDelete, "/api/travelLogs/"+id, otherToken, nil)
	expectStatus(t, w, http.StatusForbidden)

	w = env.doJSON(http.MethodDelete, "/api/travelLogs/"+id, ownerToken, nil)
	expectStatus(t, w, http.StatusOK)
	expectMsg(t, w, "Travel log removed")

	w = env.doJSON(http.MethodGet, "/api/travelLogs/"+id, ownerToken, nil)
	expectStatus(t, w, http.StatusNotFound)
}

func TestTravelLogLikeTwice(t *testing.T) {
	env := newTestEnv()
	ownerToken, _ := env.signup(t, "owner", "owner@b.com", "secret1")
	otherToken, otherID := env.signup(t, "other", "other@b.com", "secret1")

	log := createLog(t, env, ownerToken, gin.H{"title": "Trip", "destination": "Rome", "isPublic": true})
	id, _ := log["id"].(string)

	w := env.doJSON(http.MethodPut, "/api/travelLogs/like/"+id, otherToken, nil)
	expectStatus(t, w, http.StatusOK)

	var likes []string
	if err := json.Unmarshal(w.Body.Bytes(), &likes); err != nil {
		t.Fatalf("decode likes failed: %v", err)
	}
	if len(likes) != 1 || likes[0] != otherID {
		t.Fatalf("expected likes [%s], got %v", otherID, likes)
	}

	w = env.doJSON(http.MethodPut, "/api/travelLogs/like/"+id, otherToken, nil)
	expectStatus(t, w, http.StatusBadRequest)
	expectMsg(t, w, "Already liked")

	w = env.doJSON(http.MethodPut, "/api/travelLogs/unlike/"+id, otherToken, nil)
	expectStatus(t, w, http.StatusOK)
	if err := json.Unmarshal(w.Body.Bytes(), &likes); err != nil {
		t.Fatalf("decode likes failed: %v", err)
	}
	if len(likes) != 0 {
		t.Fatalf("expected empty likes after unlike, got %v", likes)
	}
}

func TestTravelLogBookmarkTwice(t *testing.T) {
	env := newTestEnv()
	ownerToken, _ := env.signup(t, "owner", "owner@b.com", "secret1")

	log := createLog(t, env, ownerToken, gin.H{"title": "Trip", "destination": "Rome"})
	id, _ := log["id"].(string)

	w := env.doJSON(http.MethodPut, "/api/travelLogs/bookmark/"+id, ownerToken, nil)
	expectStatus(t, w, http.StatusOK)

	w = env.doJSON(http.MethodPut, "/api/travelLogs/bookmark/"+id, ownerToken, nil)
	expectStatus(t, w, http.StatusBadRequest)
	expectMsg(t, w, "Already bookmarked")
}

func TestTravelLogPublicFeedNoAuth(t *testing.T) {
	env := newTestEnv()
	ownerToken, _ := env.signup(t, "owner", "owner@b.com", "secret1")
	createLog(t, env, ownerToken, gin.H{"title": "Open", "destination": "Lima", "isPublic": true})
	createLog(t, env, ownerToken, gin.H{"title": "Hidden", "destination": "Bali"})

	req := httptest.NewRequest(http.MethodGet, "/api/travelLogs/public", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	expectStatus(t, w, http.StatusOK)

	var logs []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &logs); err != nil {
		t.Fatalf("decode public feed failed: %v", err)
	}
	if len(logs) != 1 || logs[0]["title"] != "Open" {
		t.Fatalf("expected only the public log, got %v", logs)
	}
}

func TestTravelLogListOwnOnly(t *testing.T) {
	env := newTestEnv()
	aToken, _ := env.signup(t, "a", "a@b.com", "secret1")
	bToken, _ := env.signup(t, "b", "b@b.com", "secret1")

	createLog(t, env, aToken, gin.H{"title": "Mine", "destination": "Rome"})
	createLog(t, env, bToken, gin.H{"title": "Theirs", "destination": "Oslo"})

	w := env.doJSON(http.MethodGet, "/api/travelLogs", aToken, nil)
	expectStatus(t, w, http.StatusOK)

	var logs []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &logs); err != nil {
		t.Fatalf("decode list failed: %v", err)
	}
	if len(logs) != 1 || logs[0]["title"] != "Mine" {
		t.Fatalf("expected only own logs, got %v", logs)
	}
}
