package resumes_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-matcher-backend/internal/bootstrap"
	"resume-matcher-backend/internal/shared/config"
)

func buildTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:3000"},
		UploadDir:       t.TempDir(),
		JWTSecret:       "test-secret",
		Env:             "dev",
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func uploadRequest(t *testing.T, target string, token string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", "resume.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte("not a real pdf")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func registerTestUser(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()
	payload := `{"username":"` + username + `","email":"` + username + `@example.com","password":"s3cret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", resp.Code, resp.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if out.Token == "" {
		t.Fatal("expected a token")
	}
	return out.Token
}

func TestGuestStructureAnalysisIsEphemeral(t *testing.T) {
	app := buildTestApp(t)

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, uploadRequest(t, "/api/v1/resumes/structure", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}
	var out struct {
		Score     int    `json:"score"`
		Persisted bool   `json:"persisted"`
		ResumeID  string `json:"resume_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Persisted {
		t.Error("guest analysis must not persist")
	}
	if out.ResumeID != "" {
		t.Errorf("guest analysis leaked resume id %q", out.ResumeID)
	}
}

func TestAuthenticatedAnalysisThenProfileAndMatches(t *testing.T) {
	app := buildTestApp(t)
	token := registerTestUser(t, app.Router, "alice")

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, uploadRequest(t, "/api/v1/resumes/ats", token))
	if resp.Code != http.StatusOK {
		t.Fatalf("ats status = %d, body %s", resp.Code, resp.Body.String())
	}

	var analyzed struct {
		Score      int      `json:"score"`
		IsReadable bool     `json:"is_readable"`
		Issues     []string `json:"issues"`
		Persisted  bool     `json:"persisted"`
		ResumeID   string   `json:"resume_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&analyzed); err != nil {
		t.Fatalf("decode ats response: %v", err)
	}
	if !analyzed.Persisted || analyzed.ResumeID == "" {
		t.Fatalf("expected persisted result with id, got %+v", analyzed)
	}
	// A stub upload has no extractable text: both contact checks fail.
	if analyzed.Score != 30 {
		t.Errorf("ats score = %d, want 30", analyzed.Score)
	}

	profileReq := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	profileReq.Header.Set("Authorization", "Bearer "+token)
	profileResp := httptest.NewRecorder()
	app.Router.ServeHTTP(profileResp, profileReq)
	if profileResp.Code != http.StatusOK {
		t.Fatalf("profile status = %d, body %s", profileResp.Code, profileResp.Body.String())
	}
	var profile struct {
		Resumes []struct {
			ID       string `json:"id"`
			ATSScore *int   `json:"ats_score"`
		} `json:"resumes"`
	}
	if err := json.NewDecoder(profileResp.Body).Decode(&profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if len(profile.Resumes) != 1 || profile.Resumes[0].ID != analyzed.ResumeID {
		t.Fatalf("profile = %+v, want the analyzed resume", profile.Resumes)
	}

	matchReq := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+analyzed.ResumeID+"/matches", nil)
	matchReq.Header.Set("Authorization", "Bearer "+token)
	matchResp := httptest.NewRecorder()
	app.Router.ServeHTTP(matchResp, matchReq)
	if matchResp.Code != http.StatusOK {
		t.Fatalf("matches status = %d, body %s", matchResp.Code, matchResp.Body.String())
	}
	var matches struct {
		ResumeID       string   `json:"resume_id"`
		SkillsDetected []string `json:"skills_detected"`
	}
	if err := json.NewDecoder(matchResp.Body).Decode(&matches); err != nil {
		t.Fatalf("decode matches: %v", err)
	}
	if matches.ResumeID != analyzed.ResumeID {
		t.Errorf("match resume id = %q, want %q", matches.ResumeID, analyzed.ResumeID)
	}
}

func TestPersistedRoutesRequireAuth(t *testing.T) {
	app := buildTestApp(t)

	for _, target := range []string{
		"/api/v1/profile",
		"/api/v1/resumes/some-id/matches",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp := httptest.NewRecorder()
		app.Router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Errorf("GET %s as guest: status = %d, want 401", target, resp.Code)
		}
	}
}

func TestDeleteResumeCascades(t *testing.T) {
	app := buildTestApp(t)
	token := registerTestUser(t, app.Router, "bob")

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, uploadRequest(t, "/api/v1/resumes/structure", token))
	if resp.Code != http.StatusOK {
		t.Fatalf("structure status = %d, body %s", resp.Code, resp.Body.String())
	}
	var analyzed struct {
		ResumeID string `json:"resume_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&analyzed); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	delReq := httptest.NewRequest(http.MethodDelete, "/api/v1/resumes/"+analyzed.ResumeID, nil)
	delReq.Header.Set("Authorization", "Bearer "+token)
	delResp := httptest.NewRecorder()
	app.Router.ServeHTTP(delResp, delReq)
	if delResp.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, body %s", delResp.Code, delResp.Body.String())
	}

	matchReq := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+analyzed.ResumeID+"/matches", nil)
	matchReq.Header.Set("Authorization", "Bearer "+token)
	matchResp := httptest.NewRecorder()
	app.Router.ServeHTTP(matchResp, matchReq)
	if matchResp.Code != http.StatusNotFound {
		t.Fatalf("matches after delete: status = %d, want 404", matchResp.Code)
	}
}

func TestOtherUsersResumeIsForbidden(t *testing.T) {
	app := buildTestApp(t)
	ownerToken := registerTestUser(t, app.Router, "carol")
	otherToken := registerTestUser(t, app.Router, "dave")

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, uploadRequest(t, "/api/v1/resumes/structure", ownerToken))
	if resp.Code != http.StatusOK {
		t.Fatalf("structure status = %d", resp.Code)
	}
	var analyzed struct {
		ResumeID string `json:"resume_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&analyzed); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	matchReq := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/"+analyzed.ResumeID+"/matches", nil)
	matchReq.Header.Set("Authorization", "Bearer "+otherToken)
	matchResp := httptest.NewRecorder()
	app.Router.ServeHTTP(matchResp, matchReq)
	if matchResp.Code != http.StatusForbidden {
		t.Fatalf("matches as other user: status = %d, want 403", matchResp.Code)
	}
}

func TestMissingFileUploadRejected(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/structure", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=empty")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}
