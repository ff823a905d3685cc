package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/skillmatrix/internal/db"
	"github.com/jonathan/skillmatrix/internal/ingestion"
	"github.com/jonathan/skillmatrix/internal/types"
)

// UserIDHeader carries the caller's user id. Authentication happens upstream.
const UserIDHeader = "X-User-ID"

// SkillsResponse is the response for /upload
type SkillsResponse struct {
	Skills []string `json:"skills"`
}

// QuestionsResponse is the response for /generate
type QuestionsResponse struct {
	Questions []types.GeneratedQuestion `json:"questions"`
}

// GradeResponse is the response for /grade-answer
type GradeResponse struct {
	Success       bool        `json:"success"`
	Grade         types.Grade `json:"grade"`
	Strengths     []string    `json:"strengths"`
	Weaknesses    []string    `json:"weaknesses"`
	Suggestions   []string    `json:"suggestions"`
	CorrectAnswer string      `json:"correctAnswer"`
}

// AnswerResponse is the response for /get-answer
type AnswerResponse struct {
	Success bool   `json:"success"`
	Answer  string `json:"answer"`
}

// SaveQuestionResponse is the response for /save-question
type SaveQuestionResponse struct {
	Message  string              `json:"message"`
	Question types.SavedQuestion `json:"question"`
}

// SavedQuestionsResponse is the response for /saved-questions
type SavedQuestionsResponse struct {
	SavedQuestions []types.SavedQuestion `json:"saved_questions"`
}

// DashboardResponse is the response for /dashboard
type DashboardResponse struct {
	UserID         string                `json:"user_id"`
	Skills         []string              `json:"skills"`
	SavedQuestions []types.SavedQuestion `json:"saved_questions"`
	AnswerHistory  []types.AnswerRecord  `json:"answer_history"`
}

// handleUpload extracts skills from an uploaded PDF resume.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	userID, err := optionalUserID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, filename, err := readUpload(r, "file")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ingestion.ContentTypeForExtension(filename) != ingestion.ContentTypePDF {
		s.errorResponse(w, http.StatusBadRequest, "Invalid file type")
		return
	}

	text, err := ingestion.ExtractText(data, ingestion.ContentTypePDF)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	skills := s.svc.RecognizeSkills(text)

	if s.store != nil && userID != uuid.Nil {
		if err := s.store.ReplaceSkills(r.Context(), userID, skills); err != nil {
			s.writeError(w, r, fmt.Errorf("failed to update skills: %w", err))
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, SkillsResponse{Skills: skills.Sorted()})
}

// handleGenerate generates interview questions from skills or a job description.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.QuestionRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, validationError("request", err))
		return
	}

	questions, err := s.svc.GenerateQuestions(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if questions == nil {
		questions = []types.GeneratedQuestion{}
	}
	s.jsonResponse(w, http.StatusOK, QuestionsResponse{Questions: questions})
}

// handleGradeAnswer grades an answer and records it in the caller's history.
func (s *Server) handleGradeAnswer(w http.ResponseWriter, r *http.Request) {
	userID, err := optionalUserID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req types.GradeRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	result := s.svc.GradeAnswer(r.Context(), req.Question, req.Skill, req.UserAnswer)

	if s.store != nil && userID != uuid.Nil {
		rec := types.AnswerRecord{
			Question:   req.Question,
			Skill:      req.Skill,
			UserAnswer: req.UserAnswer,
			Result:     result,
			AnsweredAt: time.Now().UTC(),
		}
		// History is best effort; the grade is still returned.
		if err := s.store.AppendAnswer(r.Context(), userID, rec); err != nil {
			s.log.Warn("failed to record answer", "user_id", userID.String(), "error", err)
		}
	}

	s.jsonResponse(w, http.StatusOK, GradeResponse{
		Success:       true,
		Grade:         result.Grade,
		Strengths:     result.Strengths,
		Weaknesses:    result.Weaknesses,
		Suggestions:   result.Suggestions,
		CorrectAnswer: result.ModelAnswer,
	})
}

// handleGetAnswer returns a model answer for a question.
func (s *Server) handleGetAnswer(w http.ResponseWriter, r *http.Request) {
	var req types.ModelAnswerRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	answer := s.svc.SynthesizeModelAnswer(r.Context(), req.Question, req.Skill, req.Difficulty)
	s.jsonResponse(w, http.StatusOK, AnswerResponse{Success: true, Answer: answer})
}

// handleAnalyzeResume scores an uploaded resume against a job description.
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	data, filename, err := readUpload(r, "resume")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	contentType := ingestion.ContentTypeForExtension(filename)
	if contentType != ingestion.ContentTypePDF && contentType != ingestion.ContentTypeDOCX {
		s.errorResponse(w, http.StatusBadRequest, "Invalid file type. Please upload a PDF or Word document")
		return
	}

	jobDescription := strings.TrimSpace(r.FormValue("jobDescription"))
	if jobDescription == "" {
		s.errorResponse(w, http.StatusBadRequest, "Job description is required")
		return
	}

	text, err := ingestion.ExtractText(data, contentType)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	analysis, err := s.svc.AnalyzeResume(r.Context(), text, jobDescription)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleSaveQuestion bookmarks a question for the caller.
func (s *Server) handleSaveQuestion(w http.ResponseWriter, r *http.Request) {
	userID, err := s.requireUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var q types.SavedQuestion
	if err := decodeBody(r, &q); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := q.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	saved, err := s.store.SaveQuestion(r.Context(), userID, q)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("failed to save question: %w", err))
		return
	}
	s.jsonResponse(w, http.StatusOK, SaveQuestionResponse{Message: "Question saved successfully", Question: saved})
}

// handleSavedQuestions lists the caller's saved questions.
func (s *Server) handleSavedQuestions(w http.ResponseWriter, r *http.Request) {
	userID, err := s.requireUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	questions, err := s.store.ListSavedQuestions(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("failed to list saved questions: %w", err))
		return
	}
	if questions == nil {
		questions = []types.SavedQuestion{}
	}
	s.jsonResponse(w, http.StatusOK, SavedQuestionsResponse{SavedQuestions: questions})
}

// handleDashboard returns everything stored for the caller.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := s.requireUser(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ctx := r.Context()

	skills, err := s.store.GetSkills(ctx, userID)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("failed to load skills: %w", err))
		return
	}
	questions, err := s.store.ListSavedQuestions(ctx, userID)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("failed to list saved questions: %w", err))
		return
	}
	answers, err := s.store.ListAnswers(ctx, userID)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("failed to list answers: %w", err))
		return
	}

	resp := DashboardResponse{
		UserID:         userID.String(),
		Skills:         skills.Sorted(),
		SavedQuestions: questions,
		AnswerHistory:  answers,
	}
	if resp.SavedQuestions == nil {
		resp.SavedQuestions = []types.SavedQuestion{}
	}
	if resp.AnswerHistory == nil {
		resp.AnswerHistory = []types.AnswerRecord{}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// requireUser returns the caller's id for endpoints that only make sense with storage.
func (s *Server) requireUser(r *http.Request) (uuid.UUID, error) {
	if s.store == nil {
		return uuid.Nil, ErrNoStore
	}
	userID, err := optionalUserID(r)
	if err != nil {
		return uuid.Nil, err
	}
	if userID == uuid.Nil {
		return uuid.Nil, db.ErrMissingUser
	}
	return userID, nil
}

// optionalUserID parses the user header. A missing header yields uuid.Nil.
func optionalUserID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.Header.Get(UserIDHeader))
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: UserIDHeader, Message: "Invalid user id"}
	}
	return id, nil
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Field: "body", Message: "No data provided"}
		}
		return &ErrValidation{Field: "body", Message: "Invalid request body: " + err.Error()}
	}
	return nil
}

// readUpload reads a multipart file field fully.
func readUpload(r *http.Request, field string) ([]byte, string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, "", err
		}
		return nil, "", &ErrValidation{Field: field, Message: "No file uploaded"}
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read upload: %w", err)
	}
	return data, header.Filename, nil
}

// validationError turns a request validation failure into an *ErrValidation
// unless it already carries a more specific type.
func validationError(field string, err error) error {
	var requestErr *types.RequestError
	if errors.As(err, &requestErr) {
		return err
	}
	return &ErrValidation{Field: field, Message: err.Error()}
}
