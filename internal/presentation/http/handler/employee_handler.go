package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sahajbooks/sahaj-api/internal/application/service"
	"github.com/sahajbooks/sahaj-api/internal/presentation/http/dto/response"
)

// EmployeeHandler handles employee and salary structure HTTP requests
type EmployeeHandler struct {
	employeeService *service.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// EmployeeRequest represents the employee create request body
type EmployeeRequest struct {
	EmployeeCode  string  `json:"employee_code" binding:"required,max=50"`
	FirstName     string  `json:"first_name" binding:"required,min=2,max=100"`
	LastName      string  `json:"last_name" binding:"required,min=1,max=100"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone"`
	PAN           *string `json:"pan"`
	UAN           *string `json:"uan"`
	DateOfBirth   *string `json:"date_of_birth"`
	DateOfJoining string  `json:"date_of_joining" binding:"required"`
	Designation   *string `json:"designation"`
	Department    *string `json:"department"`
	BankName      *string `json:"bank_name"`
	AccountNumber *string `json:"account_number"`
	IFSC          *string `json:"ifsc"`
	PFOptOut      bool    `json:"pf_opt_out"`
}

// UpdateEmployeeRequest represents the employee update request body
type UpdateEmployeeRequest struct {
	FirstName     *string `json:"first_name" binding:"omitempty,min=2,max=100"`
	LastName      *string `json:"last_name" binding:"omitempty,min=1,max=100"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone"`
	PAN           *string `json:"pan"`
	UAN           *string `json:"uan"`
	DateOfBirth   *string `json:"date_of_birth"`
	DateOfLeaving *string `json:"date_of_leaving"`
	Designation   *string `json:"designation"`
	Department    *string `json:"department"`
	BankName      *string `json:"bank_name"`
	AccountNumber *string `json:"account_number"`
	IFSC          *string `json:"ifsc"`
	PFOptOut      *bool   `json:"pf_opt_out"`
}

func parseOptionalDate(value *string, label string) (*time.Time, string) {
	if value == nil || *value == "" {
		return nil, ""
	}
	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, "Invalid " + label + ". Use YYYY-MM-DD"
	}
	return &parsed, ""
}

// List handles listing employees
// @Summary List Employees
// @Description Get all employees with pagination
// @Tags employees
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param active_only query bool false "Only active employees"
// @Success 200 {object} response.APIResponse
// @Router /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var scopeID uuid.UUID
	if !IsSuperAdmin(c) {
		scopeID = *userID
	}

	result, err := h.employeeService.ListEmployees(
		c.Request.Context(),
		scopeID,
		paginationFromQuery(c),
		c.Query("search"),
		c.Query("active_only") == "true",
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Employees retrieved successfully", result)
}

// Get handles getting a single employee
// @Summary Get Employee
// @Description Get an employee by ID
// @Tags employees
// @Security BearerAuth
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} response.APIResponse
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	employee, err := h.employeeService.GetEmployee(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee retrieved successfully", employee)
}

// Create handles creating an employee
// @Summary Create Employee
// @Description Add a new employee to the roster
// @Tags employees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body EmployeeRequest true "Employee data"
// @Success 201 {object} response.APIResponse
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	dateOfJoining, err := time.Parse("2006-01-02", req.DateOfJoining)
	if err != nil {
		response.BadRequest(c, "Invalid joining date. Use YYYY-MM-DD")
		return
	}

	dateOfBirth, errMsg := parseOptionalDate(req.DateOfBirth, "birth date")
	if errMsg != "" {
		response.BadRequest(c, errMsg)
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), &service.CreateEmployeeInput{
		UserID:        *userID,
		EmployeeCode:  req.EmployeeCode,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		PAN:           req.PAN,
		UAN:           req.UAN,
		DateOfBirth:   dateOfBirth,
		DateOfJoining: dateOfJoining,
		Designation:   req.Designation,
		Department:    req.Department,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		IFSC:          req.IFSC,
		PFOptOut:      req.PFOptOut,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Employee created successfully", employee)
}

// Update handles updating an employee
// @Summary Update Employee
// @Description Update an existing employee
// @Tags employees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param request body UpdateEmployeeRequest true "Employee data"
// @Success 200 {object} response.APIResponse
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	dateOfBirth, errMsg := parseOptionalDate(req.DateOfBirth, "birth date")
	if errMsg != "" {
		response.BadRequest(c, errMsg)
		return
	}
	dateOfLeaving, errMsg := parseOptionalDate(req.DateOfLeaving, "leaving date")
	if errMsg != "" {
		response.BadRequest(c, errMsg)
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), &service.UpdateEmployeeInput{
		ID:            id,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		PAN:           req.PAN,
		UAN:           req.UAN,
		DateOfBirth:   dateOfBirth,
		DateOfLeaving: dateOfLeaving,
		Designation:   req.Designation,
		Department:    req.Department,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		IFSC:          req.IFSC,
		PFOptOut:      req.PFOptOut,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee updated successfully", employee)
}

// Delete handles removing an employee
// @Summary Delete Employee
// @Description Remove an employee from the roster
// @Tags employees
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 204
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	if err := h.employeeService.DeleteEmployee(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// CreateSalaryStructure handles assigning a salary structure
// @Summary Create Salary Structure
// @Description Decompose an annual CTC into a salary structure for an employee
// @Tags employees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Success 201 {object} response.APIResponse
// @Router /employees/{id}/salary-structures [post]
func (h *EmployeeHandler) CreateSalaryStructure(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	var req struct {
		AnnualCTC     float64 `json:"annual_ctc" binding:"required,gt=0"`
		EffectiveFrom string  `json:"effective_from" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		response.BadRequest(c, "Invalid effective date. Use YYYY-MM-DD")
		return
	}

	structure, err := h.employeeService.CreateSalaryStructure(c.Request.Context(), &service.CreateSalaryStructureInput{
		EmployeeID:    id,
		AnnualCTC:     req.AnnualCTC,
		EffectiveFrom: effectiveFrom,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Salary structure created successfully", structure)
}

// GetEffectiveSalaryStructure handles getting the structure in force
// @Summary Get Effective Salary Structure
// @Description Get the salary structure in force for an employee on a date
// @Tags employees
// @Security BearerAuth
// @Produce json
// @Param id path string true "Employee ID"
// @Param as_of query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.APIResponse
// @Router /employees/{id}/salary-structures/effective [get]
func (h *EmployeeHandler) GetEffectiveSalaryStructure(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	asOf := time.Now()
	if v := c.Query("as_of"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(c, "Invalid date. Use YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	structure, err := h.employeeService.GetEffectiveSalaryStructure(c.Request.Context(), id, asOf)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Salary structure retrieved successfully", structure)
}

// ListSalaryStructures handles listing an employee's structure history
// @Summary List Salary Structures
// @Description Get an employee's salary structure history
// @Tags employees
// @Security BearerAuth
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} response.APIResponse
// @Router /employees/{id}/salary-structures [get]
func (h *EmployeeHandler) ListSalaryStructures(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	structures, err := h.employeeService.ListSalaryStructures(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Salary structures retrieved successfully", structures)
}
