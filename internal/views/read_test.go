package views

import (
	"context"
	"net/http"
	"testing"

	"github.com/Tanupriya0912/Job-portal/internal/join"
	"github.com/Tanupriya0912/Job-portal/internal/models"
	"github.com/Tanupriya0912/Job-portal/internal/query"
	"github.com/Tanupriya0912/Job-portal/internal/session"
)

func TestJobsPagingAndEmptyState(t *testing.T) {
	b := newBackend(t, nil)
	var gotPage, gotSearch string
	b.handle("GET /api/v1/jobs", func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		gotSearch = r.URL.Query().Get("search")
		if gotSearch == "cobol" {
			writeEnv(w, http.StatusOK, "", models.JobPage{})
			return
		}
		writeEnv(w, http.StatusOK, "", models.JobPage{Content: []models.Job{{ID: "j1", Position: "Go Dev"}}, Number: 2})
	})
	v, ws := setup(t, b, Deps{})

	res := v.Jobs(context.Background(), ws, " go ", 2)
	page, ok := res.Data.(models.JobPage)
	if !ok || len(page.Content) != 1 {
		t.Fatalf("Data = %#v, want one job", res.Data)
	}
	if gotPage != "2" || gotSearch != "go" {
		t.Errorf("query = page %q search %q, want 2 and go", gotPage, gotSearch)
	}

	res = v.Jobs(context.Background(), ws, "cobol", 0)
	if res.Empty != emptyJobs {
		t.Errorf("Empty = %q, want %q", res.Empty, emptyJobs)
	}
	if gotPage != "1" {
		t.Errorf("page = %q, want 1", gotPage)
	}
}

func TestJobDetailLoadFailure(t *testing.T) {
	b := newBackend(t, nil)
	b.handle("GET /api/v1/jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "gone" {
			writeEnv(w, http.StatusNotFound, "Job not found", nil)
			return
		}
		writeEnv(w, http.StatusOK, "", models.Job{ID: r.PathValue("id"), Position: "Go Dev", Company: "Acme"})
	})
	v, ws := setup(t, b, Deps{})

	res := v.Job(context.Background(), ws, "j1")
	detail, ok := res.Data.(JobDetail)
	if !ok || detail.ID != "j1" || detail.Company != "Acme" {
		t.Fatalf("Data = %#v, want job j1", res.Data)
	}

	res = v.Job(context.Background(), ws, "gone")
	if res.Error != "Job not found" {
		t.Errorf("Error = %q, want server message", res.Error)
	}
	if got := res.HTTPStatus(); got != http.StatusNotFound {
		t.Errorf("HTTPStatus = %d, want %d", got, http.StatusNotFound)
	}
}

func TestApplicantJobsJoinsMissingFields(t *testing.T) {
	b := newBackend(t, &models.User{ID: "u1", Role: models.UserRoleUser})
	b.handle("GET /api/v1/application/applicant-jobs", func(w http.ResponseWriter, r *http.Request) {
		writeEnv(w, http.StatusOK, "", []map[string]any{
			{"id": "a1", "jobId": "j1", "status": "PENDING"},
			{"id": "a2", "jobId": "j2", "status": "ACCEPTED", "jobPosition": "SRE", "jobCompany": "Initech"},
		})
	})
	b.handle("GET /api/v1/jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeEnv(w, http.StatusOK, "", models.Job{ID: r.PathValue("id"), Position: "Go Dev", Company: "Acme"})
	})
	v, ws := setup(t, b, Deps{})

	res := v.ApplicantJobs(context.Background(), ws)
	rows, ok := res.Data.([]join.Row)
	if !ok || len(rows) != 2 {
		t.Fatalf("Data = %#v, want two rows", res.Data)
	}
	if rows[0].JobPosition != "Go Dev" || rows[0].JobSource != join.SourceJobDetail {
		t.Errorf("row 0 = %+v, want joined from job detail", rows[0])
	}
	if rows[0].Status != models.ApplicationPending {
		t.Errorf("Status = %q, want %q", rows[0].Status, models.ApplicationPending)
	}
	if rows[1].JobPosition != "SRE" || rows[1].JobSource != join.SourcePayload {
		t.Errorf("row 1 = %+v, want payload values", rows[1])
	}
	if got := b.count("/api/v1/jobs/j2"); got != 0 {
		t.Errorf("detail fetches for complete row = %d, want 0", got)
	}
}

func TestApplicantJobsDeniedForRecruiter(t *testing.T) {
	b := newBackend(t, &models.User{ID: "r1", Role: models.UserRoleRecruiter})
	v, ws := setup(t, b, Deps{})

	res := v.ApplicantJobs(context.Background(), ws)
	want := session.RoleErrorMessage("view applied jobs", models.UserRoleUser)
	if res.Denied != want {
		t.Errorf("Denied = %q, want %q", res.Denied, want)
	}
	if got := b.count("/api/v1/application/applicant-jobs"); got != 0 {
		t.Errorf("applicant-jobs requests = %d, want 0", got)
	}
}

func TestSetUserRolePublishesInvalidation(t *testing.T) {
	b := newBackend(t, &models.User{ID: "admin", Role: models.UserRoleAdmin})
	b.handle("PATCH /api/v1/users/{id}/role", func(w http.ResponseWriter, r *http.Request) {
		writeEnv(w, http.StatusOK, "Role updated", nil)
	})
	bus := &publishLog{}
	v, ws := setup(t, b, Deps{Bus: bus})

	res := v.SetUserRole(context.Background(), ws, "u2", "Recruiter")
	if res.Notice == nil || res.Notice.Kind != NoticeSuccess {
		t.Fatalf("Notice = %+v, want success", res.Notice)
	}
	if len(bus.keys) != 2 || bus.keys[0] != query.KeyUsers.String() || bus.keys[1] != query.KeyAdminStats.String() {
		t.Errorf("published = %v, want users and admin-stats", bus.keys)
	}

	res = v.SetUserRole(context.Background(), ws, "u2", "boss")
	if got := res.HTTPStatus(); got != http.StatusBadRequest {
		t.Errorf("HTTPStatus = %d, want %d", got, http.StatusBadRequest)
	}
}

func TestAdminStats(t *testing.T) {
	b := newBackend(t, &models.User{ID: "admin", Role: models.UserRoleAdmin})
	b.handle("GET /api/v1/admin/stats", func(w http.ResponseWriter, r *http.Request) {
		writeEnv(w, http.StatusOK, "", models.AdminStats{TotalUsers: 3, TotalJobs: 2})
	})
	v, ws := setup(t, b, Deps{})

	res := v.AdminStats(context.Background(), ws)
	stats, ok := res.Data.(models.AdminStats)
	if !ok || stats.TotalUsers != 3 || stats.TotalJobs != 2 {
		t.Errorf("Data = %#v, want stats", res.Data)
	}
}

func TestAdminStatsDeniedForCandidate(t *testing.T) {
	b := newBackend(t, &models.User{ID: "u1", Role: models.UserRoleUser})
	v, ws := setup(t, b, Deps{})

	res := v.AdminStats(context.Background(), ws)
	if res.Denied == "" {
		t.Fatal("Denied empty, want admin-only message")
	}
	if got := b.count("/api/v1/admin/stats"); got != 0 {
		t.Errorf("stats requests = %d, want 0", got)
	}
}

func TestLoginClearsCacheAndLoadsUser(t *testing.T) {
	b := newBackend(t, &models.User{ID: "u1", Username: "ana", Role: models.UserRoleRecruiter})
	b.handle("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeEnv(w, http.StatusOK, "Welcome back", nil)
	})
	v, ws := setup(t, b, Deps{})
	ws.Query.SetData(query.KeyUsers, func(any) any { return []models.User{{ID: "stale"}} })

	res := v.Login(context.Background(), ws, "Ana@Example.com", "secret")
	if res.Notice == nil || res.Notice.Text != "Welcome back" {
		t.Fatalf("Notice = %+v, want server message", res.Notice)
	}
	if _, ok := ws.Query.Peek(query.KeyUsers); ok {
		t.Error("cached users survived login")
	}
	user, ok := ws.Session.User()
	if !ok || user.Role != models.UserRoleRecruiter {
		t.Errorf("session user = %+v, want recruiter", user)
	}

	res = v.Login(context.Background(), ws, "", "")
	if got := res.HTTPStatus(); got != http.StatusBadRequest {
		t.Errorf("HTTPStatus = %d, want %d", got, http.StatusBadRequest)
	}
}
