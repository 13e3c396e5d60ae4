// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/resume-tailor/internal/render"
	"github.com/pdiddy/resume-tailor/internal/tailor"
	"github.com/pdiddy/resume-tailor/internal/transform"
	"github.com/pdiddy/resume-tailor/pkg/types"
)

type fakeTransformer struct {
	output string
	err    error
	gotKey string
}

func (f *fakeTransformer) Transform(_ context.Context, _, _ string, creds transform.Credentials) (string, error) {
	f.gotKey = creds.APIKey
	return f.output, f.err
}

func pdfBytes(t *testing.T, lines ...string) []byte {
	t.Helper()
	doc := gofpdf.New("P", "pt", "Letter", "")
	doc.SetCompression(false)
	doc.SetFont("Helvetica", "", 10)
	doc.AddPage()
	for i, l := range lines {
		doc.Text(54, 72+float64(i)*14, l)
	}
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func testServer(t *testing.T, ft *fakeTransformer, defaultKey string) *Server {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	p := &tailor.Pipeline{
		Transformer: ft,
		Strategy:    render.ParagraphFlow{},
		Provider:    types.ProviderGemini,
		Logger:      log,
	}
	s, err := New(types.ServerConfig{UploadDir: filepath.Join(t.TempDir(), "uploads")}, p, defaultKey, log)
	require.NoError(t, err)
	return s
}

// upload builds a multipart request; empty fields are omitted.
func upload(t *testing.T, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if filename != "" {
		fw, err := w.CreateFormFile("resume", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/tailor-resume", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	s := testServer(t, &fakeTransformer{}, "")
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/api/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode(t, resp)["status"])
}

func TestTailorResumeBadRequest(t *testing.T) {
	pdf := pdfBytes(t, "Jane Doe")
	full := map[string]string{"job_description": "Go developer", "api_key": "k"}

	tests := []struct {
		name     string
		filename string
		content  []byte
		fields   map[string]string
		want     string
	}{
		{"no file", "", nil, full, "No resume file provided"},
		{"no job description", "cv.pdf", pdf, map[string]string{"api_key": "k"}, "No job description provided"},
		{"no key", "cv.pdf", pdf, map[string]string{"job_description": "Go developer"}, "No API key provided"},
		{"not a pdf", "cv.docx", pdf, full, "Only PDF files are allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testServer(t, &fakeTransformer{output: "X"}, "")
			resp, err := s.App().Test(upload(t, tt.filename, tt.content, tt.fields), -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.want, decode(t, resp)["error"])
		})
	}
}

func TestTailorResumeAndDownload(t *testing.T) {
	ft := &fakeTransformer{output: "```\nJane Doe\njane@example.com | 555-123-4567\n\nSKILLS\n- Go\n```"}
	s := testServer(t, ft, "")

	req := upload(t, "My Resume.pdf", pdfBytes(t, "Jane Doe", "SKILLS", "- Python"), map[string]string{
		"job_description": "Go developer",
		"api_key":         "request-key",
	})
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, true, body["success"])
	filename := body["filename"].(string)
	assert.True(t, strings.HasPrefix(filename, "tailored_"))
	assert.True(t, strings.HasSuffix(filename, "_My_Resume.pdf"))
	assert.Equal(t, "/api/download/"+filename, body["download_url"])
	assert.Contains(t, body["preview"].(map[string]any)["text"], "SKILLS")
	assert.Equal(t, "jane@example.com", body["contact"].(map[string]any)["email"])
	assert.Equal(t, "request-key", ft.gotKey)

	// Only the tailored output remains in the upload directory.
	entries, err := os.ReadDir(s.Config().UploadDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filename, entries[0].Name())

	resp, err = s.App().Test(httptest.NewRequest(http.MethodGet, body["download_url"].(string), nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestTailorResumeDefaultKey(t *testing.T) {
	ft := &fakeTransformer{output: "Jane Doe"}
	s := testServer(t, ft, "configured-key")

	req := upload(t, "cv.pdf", pdfBytes(t, "Jane Doe"), map[string]string{"job_description": "Go developer"})
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "configured-key", ft.gotKey)
}

func TestTailorResumeStageErrors(t *testing.T) {
	tests := []struct {
		name     string
		ft       *fakeTransformer
		lines    []string
		wantCode int
		wantKind string
	}{
		{"no text", &fakeTransformer{output: "X"}, nil, http.StatusUnprocessableEntity, types.KindExtraction},
		{"transform failure", &fakeTransformer{err: errors.New("quota exceeded")}, []string{"Jane Doe"}, http.StatusBadGateway, types.KindTransform},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testServer(t, tt.ft, "k")
			content := pdfBytes(t, tt.lines...)
			resp, err := s.App().Test(upload(t, "cv.pdf", content, map[string]string{"job_description": "jd"}), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
			assert.Equal(t, tt.wantKind, decode(t, resp)["kind"])

			entries, err := os.ReadDir(s.Config().UploadDir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestDownloadNotFound(t *testing.T) {
	s := testServer(t, &fakeTransformer{}, "")
	secret := filepath.Join(filepath.Dir(s.Config().UploadDir), "secret.pdf")
	require.NoError(t, os.WriteFile(secret, []byte("%PDF-1.4"), 0o644))

	for _, path := range []string{
		"/api/download/missing.pdf",
		"/api/download/..%2Fsecret.pdf",
		"/api/download/notes.txt",
	} {
		t.Run(path, func(t *testing.T) {
			resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.Contains(t, decode(t, resp)["error"], "File not found")
		})
	}
}

func TestSecureFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"resume.pdf", "resume.pdf"},
		{"My Resume.pdf", "My_Resume.pdf"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\jane\cv.pdf`, "cv.pdf"},
		{".hidden.pdf", "hidden.pdf"},
		{"résumé.pdf", "rsum.pdf"},
		{"..", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, secureFilename(tt.in), tt.in)
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(&types.ExtractionError{Op: "x", Err: types.ErrNoText}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(&types.ExtractionError{Op: "x", Err: errors.New("bad")}))
	assert.Equal(t, http.StatusBadGateway, statusFor(&types.TransformError{Op: "x", Err: errors.New("bad")}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(&types.RenderError{Op: "x", Err: errors.New("bad")}))
}
