package httpapi

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// resource binds the uniform CRUD routes of one kind. present shapes a
// record for the response; nil sends it as is.
type resource[T any, Patch any] struct {
	label   string
	list    func(ctx context.Context, q string) ([]T, error)
	get     func(ctx context.Context, id string) (T, error)
	create  func(ctx context.Context, rec T) (T, error)
	update  func(ctx context.Context, id string, patch Patch) (T, error)
	delete  func(ctx context.Context, id string) error
	actions map[string]func(ctx context.Context, id string) (T, error)
	present func(T) any
}

func (r resource[T, Patch]) mount(g fiber.Router) {
	g.Get("/", func(c *fiber.Ctx) error {
		items, err := r.list(c.UserContext(), c.Query("q"))
		if err != nil {
			return err
		}
		return Success(c, "Daftar "+r.label, r.many(items))
	})
	g.Get("/:id", func(c *fiber.Ctx) error {
		item, err := r.get(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return Success(c, "Detail "+r.label, r.one(item))
	})
	g.Post("/", func(c *fiber.Ctx) error {
		var in T
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
		}
		item, err := r.create(c.UserContext(), in)
		if err != nil {
			return err
		}
		return SuccessWithCode(c, fiber.StatusCreated, r.label+" dibuat", r.one(item))
	})
	g.Patch("/:id", func(c *fiber.Ctx) error {
		var patch Patch
		if err := c.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
		}
		item, err := r.update(c.UserContext(), c.Params("id"), patch)
		if err != nil {
			return err
		}
		return Success(c, r.label+" diperbarui", r.one(item))
	})
	g.Delete("/:id", func(c *fiber.Ctx) error {
		if err := r.delete(c.UserContext(), c.Params("id")); err != nil {
			return err
		}
		return Success(c, r.label+" dihapus", nil)
	})
	for name, action := range r.actions {
		g.Post("/:id/"+name, func(c *fiber.Ctx) error {
			item, err := action(c.UserContext(), c.Params("id"))
			if err != nil {
				return err
			}
			return Success(c, r.label+" diperbarui", r.one(item))
		})
	}
}

func (r resource[T, Patch]) one(item T) any {
	if r.present == nil {
		return item
	}
	return r.present(item)
}

func (r resource[T, Patch]) many(items []T) any {
	if r.present == nil {
		return items
	}
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = r.present(item)
	}
	return out
}
