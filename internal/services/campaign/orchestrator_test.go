package campaign

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ternarybob/arbor"

	"github.com/viralforge/studio/internal/interfaces"
	"github.com/viralforge/studio/internal/models"
	"github.com/viralforge/studio/internal/services/upload"
	"github.com/viralforge/studio/internal/services/wizard"
	"github.com/viralforge/studio/internal/storage/memory"
)

// pipelineFixture wires a complete orchestrator against httptest stand-ins
// for the ticket endpoint, object storage, and the generation API.
type pipelineFixture struct {
	orchestrator *Orchestrator
	wizard       *wizard.Service

	ticketCount   int32
	putCount      int32
	putStatus     int32 // HTTP status the PUT handler responds with
	generateCount int32
	blocking      int32 // when 1, the generation handler blocks on release

	mu           sync.Mutex
	putBody      []byte
	generateBody []byte // last request body received by the generation API
	generatePath string // last path hit on the generation API
	response     string
	responseCode int

	started chan struct{}
	release chan struct{}

	uploadSrv *httptest.Server
	ticketSrv *httptest.Server
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()

	f := &pipelineFixture{
		putStatus:    http.StatusOK,
		response:     `{"content_ideas":[{"topic":"Launch teaser","platform":"tiktok","engagement_score":80}]}`,
		responseCode: http.StatusOK,
		started:      make(chan struct{}, 4),
		release:      make(chan struct{}),
	}
	logger := arbor.NewLogger()

	f.uploadSrv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.putCount, 1)
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.putBody = body
		f.mu.Unlock()
		w.WriteHeader(int(atomic.LoadInt32(&f.putStatus)))
	}))

	f.ticketSrv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.ticketCount, 1)
		json.NewEncoder(w).Encode(models.UploadTicket{
			UploadURL: f.uploadSrv.URL + "/bucket/obj-1?sig=abc",
			ObjectKey: "obj-1",
		})
	}))

	generateSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.LoadInt32(&f.blocking) == 1 {
			f.started <- struct{}{}
			<-f.release
		}
		atomic.AddInt32(&f.generateCount, 1)
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.generateBody = body
		f.generatePath = r.URL.Path
		code := f.responseCode
		response := f.response
		f.mu.Unlock()
		w.WriteHeader(code)
		w.Write([]byte(response))
	}))

	t.Cleanup(func() {
		f.uploadSrv.Close()
		f.ticketSrv.Close()
		generateSrv.Close()
	})

	endpoints := EndpointConfig{
		TicketURL:        f.ticketSrv.URL,
		BasicURL:         generateSrv.URL + "/basic",
		ComprehensiveURL: generateSrv.URL + "/comprehensive",
	}

	storage := memory.NewSessionStorage()
	f.wizard = wizard.NewService(storage, logger)

	uploads := upload.NewClient(f.ticketSrv.URL, upload.WithLogger(logger))
	api := NewAPIClient(WithAPILogger(logger))
	builder := NewBuilder(endpoints, logger)

	f.orchestrator = NewOrchestrator(uploads, api, builder, f.wizard, nil, logger)
	return f
}

func (f *pipelineFixture) setResponse(code int, body string) {
	f.mu.Lock()
	f.responseCode = code
	f.response = body
	f.mu.Unlock()
}

func (f *pipelineFixture) lastPut() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.putBody
}

func (f *pipelineFixture) lastGenerate() ([]byte, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generateBody, f.generatePath
}

func testData() models.CollectedData {
	return models.CollectedData{
		Product:        models.ProductInfo{Name: "Solar Kettle"},
		TargetAudience: "campers",
		Files: []models.UploadedFile{
			{Name: "kettle.png", Type: "image/png", Data: []byte("real png bytes")},
		},
	}
}

func TestOrchestratorRun_EndToEnd(t *testing.T) {
	f := newPipelineFixture(t)
	f.setResponse(http.StatusOK, `{"content":"{\"content_ideas\":[{\"topic\":\"Global launch\",\"platform\":\"tiktok\"}]}"}`)

	goal := models.Goal{ID: "go-viral", Title: "Go Viral Globally"}
	result, err := f.orchestrator.Run(context.Background(), "ses_1", testData(), goal, nil)
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}

	if len(result.ContentIdeas) != 1 || result.ContentIdeas[0].Topic != "Global launch" {
		t.Errorf("Unexpected normalized result: %+v", result)
	}

	// Sentinel goal routes to the comprehensive endpoint
	body, path := f.lastGenerate()
	if path != "/comprehensive" {
		t.Errorf("Expected comprehensive endpoint, got %s", path)
	}

	// The comprehensive request carries the object key and a signature-free image URL
	var req map[string]interface{}
	if err := json.Unmarshal(body, &req); err != nil {
		t.Fatalf("Generation request body is not JSON: %v", err)
	}
	if req["objectKey"] != "obj-1" {
		t.Errorf("Expected objectKey obj-1, got %v", req["objectKey"])
	}
	imageURL, _ := req["imageUrl"].(string)
	if imageURL != f.uploadSrv.URL+"/bucket/obj-1" {
		t.Errorf("Expected presign query stripped from image URL, got %q", imageURL)
	}

	// The canonical result is persisted for the session
	stored, err := f.wizard.GetResult(context.Background(), "ses_1")
	if err != nil || stored == nil {
		t.Fatalf("Expected stored result, got %v, err=%v", stored, err)
	}
	if stored.ContentIdeas[0].Topic != "Global launch" {
		t.Errorf("Stored result diverges from returned result: %+v", stored)
	}
}

func TestOrchestratorRun_BasicGoalRouting(t *testing.T) {
	f := newPipelineFixture(t)

	goal := models.Goal{ID: "brand", Title: "Boost Brand Awareness"}
	_, err := f.orchestrator.Run(context.Background(), "ses_2", testData(), goal, nil)
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}

	body, path := f.lastGenerate()
	if path != "/basic" {
		t.Errorf("Expected basic endpoint, got %s", path)
	}

	var req map[string]interface{}
	json.Unmarshal(body, &req)
	if _, present := req["objectKey"]; present {
		t.Errorf("Basic request must omit objectKey, body: %s", body)
	}
}

func TestOrchestratorRun_OneShotLatch(t *testing.T) {
	f := newPipelineFixture(t)
	atomic.StoreInt32(&f.blocking, 1)

	goal := models.Goal{Title: "Boost Sales"}
	firstDone := make(chan error, 1)
	go func() {
		_, err := f.orchestrator.Run(context.Background(), "ses_3", testData(), goal, nil)
		firstDone <- err
	}()

	// Wait until the first run is blocked inside the generation call, then
	// fire the duplicate
	<-f.started
	_, err := f.orchestrator.Run(context.Background(), "ses_3", testData(), goal, nil)
	if !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("Expected ErrAlreadyRunning, got %v", err)
	}

	atomic.StoreInt32(&f.blocking, 0)
	close(f.release)
	if err := <-firstDone; err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	// The duplicate performed no network calls at all
	if n := atomic.LoadInt32(&f.ticketCount); n != 1 {
		t.Errorf("Expected exactly 1 ticket request, got %d", n)
	}
	if n := atomic.LoadInt32(&f.generateCount); n != 1 {
		t.Errorf("Expected exactly 1 generation call, got %d", n)
	}

	// After completion the session stays latched until an explicit reset
	_, err = f.orchestrator.Run(context.Background(), "ses_3", testData(), goal, nil)
	if !errors.Is(err, ErrAlreadyComplete) {
		t.Fatalf("Expected ErrAlreadyComplete, got %v", err)
	}

	f.orchestrator.Reset("ses_3")
	if _, err := f.orchestrator.Run(context.Background(), "ses_3", testData(), goal, nil); err != nil {
		t.Fatalf("Run after reset failed: %v", err)
	}
}

func TestOrchestratorRun_TicketFailureHalts(t *testing.T) {
	f := newPipelineFixture(t)

	// Point the orchestrator at a ticket endpoint that always fails
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no tickets", http.StatusInternalServerError)
	}))
	defer failing.Close()
	f.orchestrator.uploads = upload.NewClient(failing.URL)

	_, err := f.orchestrator.Run(context.Background(), "ses_4", testData(), models.Goal{Title: "Boost Sales"}, nil)

	var serverErr *interfaces.ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("Expected *interfaces.ServerError, got %T: %v", err, err)
	}

	// Nothing past the ticket step ran, and no result was stored
	if n := atomic.LoadInt32(&f.putCount); n != 0 {
		t.Errorf("Expected no PUT after ticket failure, got %d", n)
	}
	if n := atomic.LoadInt32(&f.generateCount); n != 0 {
		t.Errorf("Expected no generation call after ticket failure, got %d", n)
	}
	stored, _ := f.wizard.GetResult(context.Background(), "ses_4")
	if stored != nil {
		t.Error("Result must stay unset after a failed run")
	}

	// A failed run releases the latch for a user-initiated retry
	f.orchestrator.uploads = upload.NewClient(f.ticketSrv.URL)
	if _, err := f.orchestrator.Run(context.Background(), "ses_4", testData(), models.Goal{Title: "Boost Sales"}, nil); err != nil {
		t.Fatalf("Retry after failure should start fresh, got %v", err)
	}
}

func TestOrchestratorRun_UploadFailureHalts(t *testing.T) {
	f := newPipelineFixture(t)
	atomic.StoreInt32(&f.putStatus, http.StatusForbidden)

	_, err := f.orchestrator.Run(context.Background(), "ses_5", testData(), models.Goal{Title: "Boost Sales"}, nil)

	var uploadErr *interfaces.UploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("Expected *interfaces.UploadError, got %T: %v", err, err)
	}
	if n := atomic.LoadInt32(&f.generateCount); n != 0 {
		t.Errorf("Generation must never run after a failed upload, got %d calls", n)
	}
	stored, _ := f.wizard.GetResult(context.Background(), "ses_5")
	if stored != nil {
		t.Error("Result must stay unset after a failed upload")
	}
}

func TestOrchestratorRun_PlaceholderWhenFileLost(t *testing.T) {
	f := newPipelineFixture(t)

	// Bytes were lost across the storage round-trip
	data := testData()
	data.Files = []models.UploadedFile{{Name: "kettle.png", Type: "image/png"}}

	_, err := f.orchestrator.Run(context.Background(), "ses_6", data, models.Goal{Title: "Boost Sales"}, nil)
	if err != nil {
		t.Fatalf("Degraded run must still succeed: %v", err)
	}

	// The uploaded body is the synthesized JPEG, not the empty original
	put := f.lastPut()
	if len(put) < 2 || put[0] != 0xFF || put[1] != 0xD8 {
		t.Errorf("Expected placeholder JPEG bytes to be uploaded, got %d bytes", len(put))
	}
}

func TestOrchestratorRun_InvalidFileSubstituted(t *testing.T) {
	f := newPipelineFixture(t)

	// A disallowed type substitutes the placeholder instead of aborting
	data := testData()
	data.Files = []models.UploadedFile{{Name: "doc.pdf", Type: "application/pdf", Data: []byte("%PDF-1.4")}}

	_, err := f.orchestrator.Run(context.Background(), "ses_7", data, models.Goal{Title: "Boost Sales"}, nil)
	if err != nil {
		t.Fatalf("Validation failure must degrade, not abort: %v", err)
	}
	put := f.lastPut()
	if len(put) < 2 || put[0] != 0xFF || put[1] != 0xD8 {
		t.Error("Expected placeholder JPEG to replace the rejected file")
	}
}

func TestOrchestratorRun_MalformedResponseSurfaced(t *testing.T) {
	f := newPipelineFixture(t)
	f.setResponse(http.StatusOK, `{"content": "not a json document"}`)

	_, err := f.orchestrator.Run(context.Background(), "ses_8", testData(), models.Goal{Title: "Boost Sales"}, nil)

	var malformed *interfaces.MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected *interfaces.MalformedResponseError, got %T: %v", err, err)
	}
	stored, _ := f.wizard.GetResult(context.Background(), "ses_8")
	if stored != nil {
		t.Error("Result must stay unset when normalization fails")
	}
}
