package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
)

func sendJoinRequest(t *testing.T, token string, companyID uint) {
	t.Helper()

	rec := doRequest(t, http.MethodPost, "/request", token, map[string]interface{}{
		"to_company_id":  companyID,
		"invite_message": "string",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("send request to company %d: got status %d, body %s",
			companyID, rec.Code, rec.Body.String())
	}
}

func TestSendRequestUnauthenticated(t *testing.T) {
	resetDB(t)

	rec := doRequest(t, http.MethodPost, "/request", "", map[string]interface{}{
		"to_company_id":  1,
		"invite_message": "string",
	})

	if rec.Code != http.StatusForbidden {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusForbidden)
	}
	if detail := detailOf(t, rec); detail != "Not authenticated" {
		t.Errorf("detail: got %q", detail)
	}
}

// A request to a company that does not exist is a validation failure,
// surfaced as 400 rather than 404.
func TestSendRequestCompanyMissing(t *testing.T) {
	resetDB(t)

	_, token := signupAndLogin(t, "test1@test.com", "test1", "testt")

	rec := doRequest(t, http.MethodPost, "/request", token, map[string]interface{}{
		"to_company_id":  100,
		"invite_message": "string",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if detail := detailOf(t, rec); detail != "Company does not exist" {
		t.Errorf("detail: got %q", detail)
	}
}

func TestSendRequestAsOwner(t *testing.T) {
	resetDB(t)

	_, token := signupAndLogin(t, "test1@test.com", "test1", "testt")
	companyID := createCompany(t, token, "test_company_1", "")

	rec := doRequest(t, http.MethodPost, "/request", token, map[string]interface{}{
		"to_company_id":  companyID,
		"invite_message": "string",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if detail := detailOf(t, rec); detail != "User is already a member of the company" {
		t.Errorf("detail: got %q", detail)
	}
}

func TestSendRequestDuplicatePending(t *testing.T) {
	resetDB(t)

	_, ownerToken := signupAndLogin(t, "test1@test.com", "test1", "testt")
	_, token := signupAndLogin(t, "test2@test.com", "test2", "testt")
	companyID := createCompany(t, ownerToken, "test_company_1", "")

	sendJoinRequest(t, token, companyID)

	rec := doRequest(t, http.MethodPost, "/request", token, map[string]interface{}{
		"to_company_id":  companyID,
		"invite_message": "string",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if detail := detailOf(t, rec); detail != "Request already sent" {
		t.Errorf("detail: got %q", detail)
	}

	// the first request is still pending
	rec = doRequest(t, http.MethodGet, "/request/my", token, nil)
	if requests := resultListOf(t, rec); len(requests) != 1 {
		t.Errorf("got %d pending requests, want 1", len(requests))
	}
}

func TestMyRequests(t *testing.T) {
	resetDB(t)

	_, tokenOne := signupAndLogin(t, "test1@test.com", "test1", "testt")
	_, tokenTwo := signupAndLogin(t, "test2@test.com", "test2", "testt")
	_, tokenThree := signupAndLogin(t, "test3@test.com", "test3", "testt")

	companyID := createCompany(t, tokenOne, "test_company_1", "")

	sendJoinRequest(t, tokenTwo, companyID)
	sendJoinRequest(t, tokenThree, companyID)

	for _, tc := range []struct {
		token string
		want  int
	}{
		{tokenOne, 0},
		{tokenTwo, 1},
		{tokenThree, 1},
	} {
		rec := doRequest(t, http.MethodGet, "/request/my", tc.token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
		}
		if requests := resultListOf(t, rec); len(requests) != tc.want {
			t.Errorf("got %d requests, want %d", len(requests), tc.want)
		}
	}
}

func TestCompanyRequests(t *testing.T) {
	resetDB(t)

	_, tokenOne := signupAndLogin(t, "test1@test.com", "test1", "testt")
	_, tokenTwo := signupAndLogin(t, "test2@test.com", "test2", "testt")
	_, tokenThree := signupAndLogin(t, "test3@test.com", "test3", "testt")

	companyID := createCompany(t, tokenOne, "test_company_1", "")

	sendJoinRequest(t, tokenTwo, companyID)
	sendJoinRequest(t, tokenThree, companyID)

	rec := doRequest(t, http.MethodGet, "/request/company/100", tokenTwo, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing company: got status %d, want %d", rec.Code, http.StatusNotFound)
	}
	if detail := detailOf(t, rec); detail != "Company does not exist" {
		t.Errorf("missing company detail: got %q", detail)
	}

	rec = doRequest(t, http.MethodGet, fmt.Sprintf("/request/company/%d", companyID), tokenTwo, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-owner: got status %d, want %d", rec.Code, http.StatusForbidden)
	}

	rec = doRequest(t, http.MethodGet, fmt.Sprintf("/request/company/%d", companyID), tokenOne, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner: got status %d, want %d", rec.Code, http.StatusOK)
	}
	if detail := detailOf(t, rec); detail != "success" {
		t.Errorf("owner detail: got %q", detail)
	}
	if requests := resultListOf(t, rec); len(requests) != 2 {
		t.Errorf("got %d pending requests, want 2", len(requests))
	}
}

func TestCancelRequest(t *testing.T) {
	resetDB(t)

	_, ownerToken := signupAndLogin(t, "test1@test.com", "test1", "testt")
	_, requesterToken := signupAndLogin(t, "test2@test.com", "test2", "testt")
	_, otherToken := signupAndLogin(t, "test3@test.com", "test3", "testt")

	companyID := createCompany(t, ownerToken, "test_company_1", "")
	sendJoinRequest(t, requesterToken, companyID)

	rec := doRequest(t, http.MethodDelete, "/request/12", requesterToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing request: got status %d, want %d", rec.Code, http.StatusNotFound)
	}
	if detail := detailOf(t, rec); detail != "Request not found" {
		t.Errorf("missing request detail: got %q", detail)
	}

	rec = doRequest(t, http.MethodDelete, "/request/1", otherToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong actor: got status %d, want %d", rec.Code, http.StatusForbidden)
	}
	if detail := detailOf(t, rec); detail != "It's not your request" {
		t.Errorf("wrong actor detail: got %q", detail)
	}

	rec = doRequest(t, http.MethodDelete, "/request/1", requesterToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel: got status %d, want %d", rec.Code, http.StatusOK)
	}

	rec = doRequest(t, http.MethodGet, fmt.Sprintf("/request/company/%d", companyID), ownerToken, nil)
	if requests := resultListOf(t, rec); len(requests) != 0 {
		t.Errorf("got %d pending requests after cancel, want 0", len(requests))
	}
}

func TestAcceptRequestErrors(t *testing.T) {
	resetDB(t)

	_, ownerToken := signupAndLogin(t, "test1@test.com", "test1", "testt")
	_, requesterToken := signupAndLogin(t, "test2@test.com", "test2", "testt")

	companyID := createCompany(t, ownerToken, "test_company_1", "")
	sendJoinRequest(t, requesterToken, companyID)

	rec := doRequest(t, http.MethodGet, "/request/12/accept", ownerToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing request: got status %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = doRequest(t, http.MethodGet, "/request/1/accept", requesterToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-owner: got status %d, want %d", rec.Code, http.StatusForbidden)
	}
	if detail := detailOf(t, rec); detail != "Only the owner of the company can accept requests" {
		t.Errorf("non-owner detail: got %q", detail)
	}
}

func TestDeclineRequest(t *testing.T) {
	resetDB(t)

	_, ownerToken := signupAndLogin(t, "test1@test.com", "test1", "testt")
	_, requesterToken := signupAndLogin(t, "test2@test.com", "test2", "testt")

	companyID := createCompany(t, ownerToken, "test_company_1", "")
	sendJoinRequest(t, requesterToken, companyID)

	rec := doRequest(t, http.MethodGet, "/request/100/decline", ownerToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing request: got status %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = doRequest(t, http.MethodGet, "/request/1/decline", requesterToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-owner: got status %d, want %d", rec.Code, http.StatusForbidden)
	}
	if detail := detailOf(t, rec); detail != "Only the owner of the company can decline requests" {
		t.Errorf("non-owner detail: got %q", detail)
	}

	rec = doRequest(t, http.MethodGet, "/request/1/decline", ownerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("decline: got status %d, want %d", rec.Code, http.StatusOK)
	}

	// no membership was created
	rec = doRequest(t, http.MethodGet, fmt.Sprintf("/company/%d/members", companyID), ownerToken, nil)
	if members := resultOf(t, rec)["users"].([]interface{}); len(members) != 1 {
		t.Errorf("got %d members after decline, want 1", len(members))
	}
}

// Accepting a request twice is a state error and never yields a second
// membership row.
func TestAcceptRequestTwice(t *testing.T) {
	resetDB(t)

	_, ownerToken := signupAndLogin(t, "test1@test.com", "test1", "testt")
	_, requesterToken := signupAndLogin(t, "test2@test.com", "test2", "testt")

	companyID := createCompany(t, ownerToken, "test_company_1", "")
	sendJoinRequest(t, requesterToken, companyID)

	rec := doRequest(t, http.MethodGet, "/request/1/accept", ownerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("first accept: got status %d", rec.Code)
	}

	rec = doRequest(t, http.MethodGet, "/request/1/accept", ownerToken, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second accept: got status %d, want %d", rec.Code, http.StatusBadRequest)
	}

	rec = doRequest(t, http.MethodGet, fmt.Sprintf("/company/%d/members", companyID), ownerToken, nil)
	if members := resultOf(t, rec)["users"].([]interface{}); len(members) != 2 {
		t.Errorf("got %d members, want 2", len(members))
	}
}

// End-to-end: B requests to join A's company, A accepts, B shows up in
// the member list exactly once, then B leaves and the list shrinks back.
func TestRequestJoinAndLeaveRoundTrip(t *testing.T) {
	resetDB(t)

	_, tokenA := signupAndLogin(t, "a@test.com", "userA", "testt")
	idB, tokenB := signupAndLogin(t, "b@test.com", "userB", "testt")

	companyID := createCompany(t, tokenA, "c1", "")

	sendJoinRequest(t, tokenB, companyID)

	rec := doRequest(t, http.MethodGet, "/request/1/accept", tokenA, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("accept: got status %d", rec.Code)
	}

	rec = doRequest(t, http.MethodGet, fmt.Sprintf("/company/%d/members", companyID), tokenA, nil)
	members := resultOf(t, rec)["users"].([]interface{})
	if len(members) != 2 {
		t.Fatalf("got %d members, want 2", len(members))
	}

	seen := 0
	for _, member := range members {
		if member.(map[string]interface{})["user_id"].(float64) == float64(idB) {
			seen++
		}
	}
	if seen != 1 {
		t.Fatalf("userB appears %d times in member list, want exactly once", seen)
	}

	rec = doRequest(t, http.MethodDelete, fmt.Sprintf("/company/%d/leave", companyID), tokenB, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("leave: got status %d", rec.Code)
	}

	rec = doRequest(t, http.MethodGet, fmt.Sprintf("/company/%d/members", companyID), tokenA, nil)
	if members := resultOf(t, rec)["users"].([]interface{}); len(members) != 1 {
		t.Errorf("got %d members after leave, want 1", len(members))
	}
}
