package models

// Request payloads shared between validators and controllers.

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangeEmailRequest struct {
	NewEmail        string `json:"newEmail" validate:"required,email"`
	CurrentPassword string `json:"currentPassword" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Content     string `json:"content" validate:"required"`
	VideoURL    string `json:"videoUrl" validate:"omitempty,url"`
}

type AddUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=USER ADMIN"`
}

type AssignCourseRequest struct {
	CourseID uint `json:"courseId" validate:"required"`
}

type SendNotificationRequest struct {
	Message  string `json:"message" validate:"required_without=Template"`
	Template string `json:"template"`
}

type NewsRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type ResourceRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"required,url"`
}

type QuizAnswerRequest struct {
	QuestionIndex int `json:"questionIndex" validate:"min=0"`
	OptionIndex   int `json:"optionIndex" validate:"min=0"`
}

type SelectModuleRequest struct {
	ModuleIndex int `json:"moduleIndex" validate:"min=0"`
}

type EditFieldRequest struct {
	Field string `json:"field" validate:"required,oneof=title description content videoUrl"`
	Value string `json:"value"`
}
