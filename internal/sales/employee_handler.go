package sales

import (
	"flowershop-backend/internal/models"
	"flowershop-backend/internal/storage"
	"flowershop-backend/internal/webutil"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateEmployeeRequest struct {
	FullName     string `json:"full_name" validate:"required,max=100"`
	Position     string `json:"position" validate:"required,max=50"`
	Contacts     string `json:"contacts" validate:"required"`
	WorkSchedule string `json:"work_schedule"`
	HireDate     string `json:"hire_date" validate:"required"`
}

type UpdateEmployeeRequest struct {
	FullName     *string `json:"full_name"`
	Position     *string `json:"position"`
	Contacts     *string `json:"contacts"`
	WorkSchedule *string `json:"work_schedule"`
	HireDate     *string `json:"hire_date"`
}

// GET /api/employees?name=...
func ListEmployeesHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Employee](db)
	return func(c *fiber.Ctx) error {
		opts := storage.ListOptions{Order: "employee_id ASC"}
		if name := c.Query("name"); name != "" {
			opts.Filters = append(opts.Filters, storage.Contains("full_name", name))
		}
		employees, err := repo.FindAll(opts)
		if err != nil {
			return err
		}
		return c.JSON(employees)
	}
}

// GET /api/employees/:id
func GetEmployeeHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Employee](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		employee, err := repo.FindOne(map[string]any{"employee_id": id})
		if err != nil {
			return err
		}
		return c.JSON(employee)
	}
}

// POST /api/employees
func CreateEmployeeHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Employee](db)
	return func(c *fiber.Ctx) error {
		var body CreateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса")
		}
		if err := webutil.Validate(body); err != nil {
			return err
		}
		hireDate, err := webutil.ParseDate(body.HireDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		employee := models.Employee{
			FullName:     body.FullName,
			Position:     body.Position,
			Contacts:     body.Contacts,
			WorkSchedule: body.WorkSchedule,
			HireDate:     hireDate,
		}
		if err := repo.Create(&employee); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(employee)
	}
}

// PUT /api/employees/:id
func UpdateEmployeeHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Employee](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		var body UpdateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "неверное тело запроса")
		}

		fields := map[string]any{}
		if body.FullName != nil {
			if *body.FullName == "" {
				return fiber.NewError(fiber.StatusBadRequest, "имя сотрудника не может быть пустым")
			}
			fields["full_name"] = *body.FullName
		}
		if body.Position != nil {
			fields["position"] = *body.Position
		}
		if body.Contacts != nil {
			fields["contacts"] = *body.Contacts
		}
		if body.WorkSchedule != nil {
			fields["work_schedule"] = *body.WorkSchedule
		}
		if body.HireDate != nil {
			hireDate, err := webutil.ParseDate(*body.HireDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			fields["hire_date"] = hireDate
		}

		employee, err := repo.Update(map[string]any{"employee_id": id}, fields)
		if err != nil {
			return err
		}
		return c.JSON(employee)
	}
}

// DELETE /api/employees/:id
func DeleteEmployeeHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Employee](db)
	return func(c *fiber.Ctx) error {
		id, err := webutil.ParseIntParam(c, "id")
		if err != nil {
			return err
		}
		if err := repo.Delete(map[string]any{"employee_id": id}); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "сотрудник удален"})
	}
}

// DELETE /api/employees
func DeleteAllEmployeesHandler(db *gorm.DB) fiber.Handler {
	repo := storage.NewRepository[models.Employee](db)
	return func(c *fiber.Ctx) error {
		n, err := repo.DeleteAll()
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"deleted": n})
	}
}
