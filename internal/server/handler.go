// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pdiddy/resume-tailor/internal/tailor"
	"github.com/pdiddy/resume-tailor/internal/transform"
	"github.com/pdiddy/resume-tailor/pkg/types"
)

// preview wraps the leading text of the tailored resume.
type preview struct {
	Text string `json:"text"`
}

// tailorResponse is the success body of POST /api/tailor-resume.
type tailorResponse struct {
	Success     bool          `json:"success"`
	Message     string        `json:"message"`
	DownloadURL string        `json:"download_url"`
	Filename    string        `json:"filename"`
	Preview     preview       `json:"preview"`
	Contact     types.Contact `json:"contact"`
}

// Health reports that the service is up.
func (s *Server) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "message": "Resume Tailor API is running"})
}

// TailorResume accepts a multipart upload with the fields resume,
// job_description and api_key, runs the pipeline and answers with a download
// link for the tailored PDF.
func (s *Server) TailorResume(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return badRequest(c, "No resume file provided")
	}
	jobDescription := c.FormValue("job_description")
	if strings.TrimSpace(jobDescription) == "" {
		return badRequest(c, "No job description provided")
	}
	apiKey := c.FormValue("api_key")
	if apiKey == "" {
		apiKey = s.defaultKey
	}
	if apiKey == "" {
		return badRequest(c, "No API key provided")
	}
	if file.Filename == "" {
		return badRequest(c, "No file selected")
	}
	if !isPDF(file.Filename) {
		return badRequest(c, "Only PDF files are allowed")
	}

	name := secureFilename(file.Filename)
	if name == "" {
		name = "resume.pdf"
	}
	stored := uuid.NewString() + "_" + name
	sourcePath := filepath.Join(s.cfg.UploadDir, stored)
	outputName := "tailored_" + stored
	outputPath := filepath.Join(s.cfg.UploadDir, outputName)

	if err := c.SaveFile(file, sourcePath); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "saving upload: "+err.Error())
	}
	defer os.Remove(sourcePath)

	ctx, cancel := context.WithTimeout(c.UserContext(), s.cfg.TransformTimeout)
	defer cancel()

	res, err := s.pipeline.Run(ctx, tailor.Request{
		SourcePath:     sourcePath,
		SourceName:     file.Filename,
		JobDescription: jobDescription,
		Credentials:    transform.Credentials{APIKey: apiKey},
		OutputPath:     outputPath,
	})
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
			"kind":  types.ErrorKind(err),
		})
	}

	return c.JSON(tailorResponse{
		Success:     true,
		Message:     "Resume tailored successfully",
		DownloadURL: "/api/download/" + outputName,
		Filename:    outputName,
		Preview:     preview{Text: res.Preview},
		Contact:     res.Contact,
	})
}

// Download serves a rendered PDF from the upload directory as an attachment.
func (s *Server) Download(c *fiber.Ctx) error {
	name := secureFilename(c.Params("filename"))
	path := filepath.Join(s.cfg.UploadDir, name)
	if name == "" || !isPDF(name) {
		return notFound(c, name)
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return notFound(c, name)
	}

	if err := c.Download(path, name); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return nil
}

// statusFor maps a pipeline error to its HTTP status.
func statusFor(err error) int {
	var te *types.TransformError
	switch {
	case errors.Is(err, types.ErrNoText):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &te):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func notFound(c *fiber.Ctx, name string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "File not found: " + name})
}

func isPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// secureFilename reduces name to a single path element of ASCII letters,
// digits, dots, dashes and underscores. Leading dots and underscores are
// dropped so the result is never hidden or a parent reference.
func secureFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(strings.TrimSpace(name))
	name = unsafeChars.ReplaceAllString(strings.Join(strings.Fields(name), "_"), "")
	return strings.TrimLeft(name, "._")
}
