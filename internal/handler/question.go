package handler

import (
	"strconv"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/service"
	"quizforge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	service   service.QuestionService
	validator *validation.Validator
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(svc service.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		service:   svc,
		validator: validation.NewValidator(),
	}
}

// GenerateQuestions handles POST /api/questions/generate
func (h *QuestionHandler) GenerateQuestions(c *fiber.Ctx) error {
	var req dto.GenerateQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	req.ApplyDefaults()
	if errs := h.validator.ValidateGenerateRequest(&req); len(errs) > 0 {
		return errs // Handled by the ErrorHandler middleware
	}

	resp, err := h.service.Generate(c.Context(), req.ToDomain())
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetQuestion handles GET /api/questions/:id
func (h *QuestionHandler) GetQuestion(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateQuestionID(id); len(errs) > 0 {
		return errs
	}

	item, err := h.service.GetQuestion(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

// ListQuestions handles GET /api/questions
func (h *QuestionHandler) ListQuestions(c *fiber.Ctx) error {
	subject := c.Query("subject")
	difficulty := c.Query("difficulty")
	questionType := c.Query("question_type")

	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			return domain.ValidationErrors{domain.NewFieldError("limit", "limit must be a number")}
		}
		limit = parsed
	}

	if errs := h.validator.ValidateListFilter(subject, difficulty, questionType, limit); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.ListQuestions(c.Context(), domain.QuestionFilter{
		Subject:      domain.Subject(subject),
		Difficulty:   domain.Difficulty(difficulty),
		QuestionType: domain.QuestionType(questionType),
		Limit:        limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuestion handles DELETE /api/questions/:id
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateQuestionID(id); len(errs) > 0 {
		return errs
	}

	if err := h.service.DeleteQuestion(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Question deleted"})
}

// GetSubjects handles GET /api/meta/subjects
func (h *QuestionHandler) GetSubjects(c *fiber.Ctx) error {
	values := make([]string, 0, len(domain.Subjects()))
	for _, s := range domain.Subjects() {
		values = append(values, string(s))
	}
	return c.JSON(dto.MetaResponse{Values: values})
}

// GetDifficulties handles GET /api/meta/difficulties
func (h *QuestionHandler) GetDifficulties(c *fiber.Ctx) error {
	values := make([]string, 0, len(domain.Difficulties()))
	for _, d := range domain.Difficulties() {
		values = append(values, string(d))
	}
	return c.JSON(dto.MetaResponse{Values: values})
}

// GetQuestionTypes handles GET /api/meta/question-types
func (h *QuestionHandler) GetQuestionTypes(c *fiber.Ctx) error {
	values := make([]string, 0, len(domain.QuestionTypes()))
	for _, t := range domain.QuestionTypes() {
		values = append(values, string(t))
	}
	return c.JSON(dto.MetaResponse{Values: values})
}

// GetStates handles GET /api/meta/states
func (h *QuestionHandler) GetStates(c *fiber.Ctx) error {
	values := make([]string, 0, len(domain.States()))
	for _, s := range domain.States() {
		values = append(values, string(s))
	}
	return c.JSON(dto.MetaResponse{Values: values})
}

// RegisterRoutes wires the question endpoints onto the app.
func (h *QuestionHandler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	questions := api.Group("/questions")
	questions.Post("/generate", h.GenerateQuestions)
	questions.Get("/", h.ListQuestions)
	questions.Get("/:id", h.GetQuestion)
	questions.Delete("/:id", h.DeleteQuestion)

	meta := api.Group("/meta")
	meta.Get("/subjects", h.GetSubjects)
	meta.Get("/difficulties", h.GetDifficulties)
	meta.Get("/question-types", h.GetQuestionTypes)
	meta.Get("/states", h.GetStates)
}
