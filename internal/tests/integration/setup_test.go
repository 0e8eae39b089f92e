package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/WACPAC/wacpac-virtual-contest/internal/database"
	"github.com/WACPAC/wacpac-virtual-contest/internal/handlers"
	"github.com/WACPAC/wacpac-virtual-contest/internal/models"
	"github.com/WACPAC/wacpac-virtual-contest/internal/routes"
	"github.com/WACPAC/wacpac-virtual-contest/internal/scraper"
	"github.com/WACPAC/wacpac-virtual-contest/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}
	database.DB = db
	if err := database.DB.AutoMigrate(
		&models.Contest{},
		&models.Problem{},
		&models.User{},
		&models.Submission{},
	); err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	routes.RegisterContestRoutes(api)
	return r
}

// fakeAtCoder serves the three page shapes the scraper reads: a problem
// page, a user profile, and a one-row submission listing whose timestamp
// lands inside the contest window at test runtime.
func fakeAtCoder(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/contests/abc404/tasks/abc404_a", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>A - Sample Task - AtCoder</title></head><body></body></html>`)
	})

	mux.HandleFunc("/users/alice", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><span class="user-blue">1845</span></body></html>`)
	})

	mux.HandleFunc("/contests/abc404/submissions", func(w http.ResponseWriter, r *http.Request) {
		ts := time.Now().Add(time.Minute).Format("2006-01-02 15:04:05-0700")
		fmt.Fprintf(w, `<html><body>
			<table class="table table-bordered table-striped"><tbody>
			<tr>
				<td><time class="fixtime">%s</time></td>
				<td><a href="/contests/abc404/tasks/abc404_a">A - Sample Task</a></td>
				<td><a href="/users/alice">alice</a></td>
				<td>Go (go 1.21)</td>
				<td>100</td>
				<td>1234 Byte</td>
				<td><span class="label">AC</span></td>
				<td>12 ms</td>
				<td>3400 KB</td>
				<td><a class="submission-details-link" href="/contests/abc404/submissions/55443322">Detail</a></td>
			</tr>
			</tbody></table>
			<ul class="pager"><li><a href="?page=1">&lt; Prev</a></li></ul>
			</body></html>`, ts)
	})

	server := httptest.NewServer(mux)

	client := scraper.NewClient("").WithBaseURL(server.URL)
	handlers.InitScraper(client)
	services.InitScraper(client)

	return server
}

func performRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
