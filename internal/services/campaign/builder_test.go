package campaign

import (
	"testing"

	"github.com/ternarybob/arbor"

	"github.com/viralforge/studio/internal/models"
)

func testEndpoints() EndpointConfig {
	return EndpointConfig{
		TicketURL:        "https://api.example.com/ticket",
		BasicURL:         "https://api.example.com/basic",
		ComprehensiveURL: "https://api.example.com/comprehensive",
	}
}

func TestForGoal_Routing(t *testing.T) {
	endpoints := testEndpoints()

	tests := []struct {
		name          string
		title         string
		comprehensive bool
	}{
		{"exact sentinel", "Go Viral Globally", true},
		{"surrounding whitespace trimmed", "  Go Viral Globally  ", true},
		{"case differs", "go viral globally", false},
		{"near miss", "Go Viral Global", false},
		{"other goal", "Boost Brand Awareness", false},
		{"empty title", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, comprehensive := endpoints.ForGoal(models.Goal{Title: tt.title})
			if comprehensive != tt.comprehensive {
				t.Errorf("Expected comprehensive=%v for %q, got %v", tt.comprehensive, tt.title, comprehensive)
			}
			want := endpoints.BasicURL
			if tt.comprehensive {
				want = endpoints.ComprehensiveURL
			}
			if url != want {
				t.Errorf("Expected endpoint %s, got %s", want, url)
			}
		})
	}
}

func TestResolveFile_UsesFirstFile(t *testing.T) {
	builder := NewBuilder(testEndpoints(), arbor.NewLogger())

	data := models.CollectedData{
		Files: []models.UploadedFile{
			{Name: "first.png", Type: "image/png", Data: []byte("png bytes")},
			{Name: "second.png", Type: "image/png", Data: []byte("more bytes")},
		},
	}

	file, substituted := builder.ResolveFile(data)
	if substituted {
		t.Error("Expected no substitution for an intact file")
	}
	if file.Name != "first.png" {
		t.Errorf("Expected the first file to be chosen, got %s", file.Name)
	}
}

func TestResolveFile_SubstitutesPlaceholder(t *testing.T) {
	builder := NewBuilder(testEndpoints(), arbor.NewLogger())

	tests := []struct {
		name string
		data models.CollectedData
	}{
		{"no files", models.CollectedData{}},
		{"empty file list", models.CollectedData{Files: []models.UploadedFile{}}},
		{"bytes lost in serialization", models.CollectedData{
			Files: []models.UploadedFile{{Name: "photo.png", Type: "image/png"}},
		}},
		{"name lost", models.CollectedData{
			Files: []models.UploadedFile{{Type: "image/png", Data: []byte("bytes")}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, substituted := builder.ResolveFile(tt.data)
			if !substituted {
				t.Fatal("Expected placeholder substitution")
			}
			if file.Type != "image/jpeg" || len(file.Data) == 0 {
				t.Errorf("Placeholder should be a JPEG with bytes, got type=%s bytes=%d", file.Type, len(file.Data))
			}
		})
	}
}

func TestBuild_ObjectKeyOnlyForComprehensive(t *testing.T) {
	builder := NewBuilder(testEndpoints(), arbor.NewLogger())
	data := models.CollectedData{
		Product:        models.ProductInfo{Name: "Solar Kettle"},
		TargetAudience: "campers",
	}

	req, endpoint, err := builder.Build(data, models.Goal{Title: "Go Viral Globally"}, "obj-123", "https://storage.example.com/obj-123")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if endpoint != testEndpoints().ComprehensiveURL {
		t.Errorf("Expected comprehensive endpoint, got %s", endpoint)
	}
	if req.ObjectKey != "obj-123" {
		t.Errorf("Comprehensive request must carry the object key, got %q", req.ObjectKey)
	}

	req, endpoint, err = builder.Build(data, models.Goal{Title: "Boost Sales"}, "obj-123", "https://storage.example.com/obj-123")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if endpoint != testEndpoints().BasicURL {
		t.Errorf("Expected basic endpoint, got %s", endpoint)
	}
	if req.ObjectKey != "" {
		t.Errorf("Basic request must not carry the object key, got %q", req.ObjectKey)
	}
}

func TestBuild_ValidationFailure(t *testing.T) {
	builder := NewBuilder(testEndpoints(), arbor.NewLogger())

	// Missing product name
	_, _, err := builder.Build(models.CollectedData{}, models.Goal{Title: "Boost Sales"}, "", "https://storage.example.com/obj")
	if err == nil {
		t.Error("Expected validation error for missing product name")
	}

	// Image URL not a URL
	data := models.CollectedData{Product: models.ProductInfo{Name: "Solar Kettle"}}
	_, _, err = builder.Build(data, models.Goal{Title: "Boost Sales"}, "", "not a url")
	if err == nil {
		t.Error("Expected validation error for malformed image URL")
	}
}
