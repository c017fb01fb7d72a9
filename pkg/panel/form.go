package panel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/dateparse"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
)

var errRequired = errors.New("required")

// FormKind selects which record a form edits
type FormKind int

const (
	FormLogin FormKind = iota
	FormUser
	FormOrder
)

// FormState holds a huh form and the values bound to it
type FormState struct {
	Kind   FormKind
	EditID int // 0 when creating
	Form   *huh.Form

	// Login
	Email    string
	Password string

	// User
	Name     string
	Role     string
	Status   string
	JoinDate string

	// Order
	OrderNumber   string
	Customer      string
	CustomerEmail string
	Amount        string
	OrderDate     string
	Items         string
}

// NewLoginForm builds the sign-in form
func NewLoginForm() *FormState {
	fs := &FormState{Kind: FormLogin}
	fs.buildForm()
	return fs
}

// NewUserForm builds a create form, or an edit form when u is non-nil
func NewUserForm(u *models.User, today string) *FormState {
	fs := &FormState{
		Kind:     FormUser,
		Role:     string(models.RoleUser),
		Status:   string(models.UserActive),
		JoinDate: today,
	}
	if u != nil {
		fs.EditID = u.ID
		fs.Name, fs.Email = u.Name, u.Email
		fs.Role, fs.Status, fs.JoinDate = string(u.Role), string(u.Status), u.JoinDate
	}
	fs.buildForm()
	return fs
}

// NewOrderForm builds a create form, or an edit form when o is non-nil
func NewOrderForm(o *models.Order, today string) *FormState {
	fs := &FormState{
		Kind:      FormOrder,
		Status:    string(models.OrderPending),
		OrderDate: today,
	}
	if o != nil {
		fs.EditID = o.ID
		fs.OrderNumber, fs.Customer, fs.CustomerEmail = o.OrderNumber, o.Customer, o.CustomerEmail
		fs.Amount = strconv.FormatFloat(o.Amount, 'f', 2, 64)
		fs.Status, fs.OrderDate, fs.Items = string(o.Status), o.OrderDate, o.Items
	}
	fs.buildForm()
	return fs
}

// buildForm constructs the huh.Form from the current values. Calling it
// again after a failed submit reopens the form with what was typed.
func (fs *FormState) buildForm() {
	var group *huh.Group
	switch fs.Kind {
	case FormLogin:
		fs.Password = ""
		group = huh.NewGroup(
			huh.NewInput().Title("Email").Value(&fs.Email).Placeholder("admin@example.com").Validate(required),
			huh.NewInput().Title("Password").Value(&fs.Password).EchoMode(huh.EchoModePassword).Validate(required),
		).Title("Sign in")

	case FormUser:
		title := "New User"
		if fs.EditID > 0 {
			title = fmt.Sprintf("Edit User #%d", fs.EditID)
		}
		group = huh.NewGroup(
			huh.NewInput().Title("Name").Value(&fs.Name).Validate(required),
			huh.NewInput().Title("Email").Value(&fs.Email).Validate(required),
			huh.NewSelect[string]().Title("Role").Options(options(models.Roles)...).Value(&fs.Role),
			huh.NewSelect[string]().Title("Status").Options(options(models.UserStatuses)...).Value(&fs.Status),
			huh.NewInput().Title("Join date").Value(&fs.JoinDate).Placeholder("YYYY-MM-DD"),
		).Title(title)

	case FormOrder:
		title := "New Order"
		if fs.EditID > 0 {
			title = fmt.Sprintf("Edit Order #%d", fs.EditID)
		}
		group = huh.NewGroup(
			huh.NewInput().Title("Order number").Value(&fs.OrderNumber).Placeholder("blank for automatic"),
			huh.NewInput().Title("Customer").Value(&fs.Customer).Validate(required),
			huh.NewInput().Title("Customer email").Value(&fs.CustomerEmail).Validate(required),
			huh.NewInput().Title("Amount").Value(&fs.Amount).Validate(positiveAmount),
			huh.NewSelect[string]().Title("Status").Options(options(models.OrderStatuses)...).Value(&fs.Status),
			huh.NewInput().Title("Order date").Value(&fs.OrderDate).Placeholder("YYYY-MM-DD"),
			huh.NewText().Title("Items").Value(&fs.Items).Lines(2),
		).Title(title)
	}

	fs.Form = huh.NewForm(group).WithTheme(huh.ThemeDracula())
}

func options[T ~string](values []T) []huh.Option[string] {
	out := make([]huh.Option[string], len(values))
	for i, v := range values {
		out[i] = huh.NewOption(string(v), string(v))
	}
	return out
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errRequired
	}
	return nil
}

func positiveAmount(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return errors.New("must be a positive number")
	}
	return nil
}

// ToUser converts the bound values to a user
func (fs *FormState) ToUser(now time.Time) (models.User, error) {
	date, err := formDate(fs.JoinDate, now)
	if err != nil {
		return models.User{}, err
	}
	return models.User{
		ID:       fs.EditID,
		Name:     strings.TrimSpace(fs.Name),
		Email:    strings.TrimSpace(fs.Email),
		Role:     models.Role(fs.Role),
		Status:   models.UserStatus(fs.Status),
		JoinDate: date,
	}, nil
}

// ToOrder converts the bound values to an order
func (fs *FormState) ToOrder(now time.Time) (models.Order, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(fs.Amount), 64)
	if err != nil {
		return models.Order{}, fmt.Errorf("amount: %w", err)
	}
	date, err := formDate(fs.OrderDate, now)
	if err != nil {
		return models.Order{}, err
	}
	return models.Order{
		ID:            fs.EditID,
		OrderNumber:   strings.TrimSpace(fs.OrderNumber),
		Customer:      strings.TrimSpace(fs.Customer),
		CustomerEmail: strings.TrimSpace(fs.CustomerEmail),
		Amount:        amount,
		Status:        models.OrderStatus(fs.Status),
		OrderDate:     date,
		Items:         strings.TrimSpace(fs.Items),
	}, nil
}

// Patch returns every editable field of e as an update patch
func Patch(e any) (models.Patch, error) {
	fields := map[string]any{}
	switch v := e.(type) {
	case models.User:
		fields["name"], fields["email"] = v.Name, v.Email
		fields["role"], fields["status"], fields["joinDate"] = v.Role, v.Status, v.JoinDate
	case models.Order:
		if v.OrderNumber != "" {
			fields["orderNumber"] = v.OrderNumber
		}
		fields["customer"], fields["customerEmail"] = v.Customer, v.CustomerEmail
		fields["amount"], fields["status"] = v.Amount, v.Status
		fields["orderDate"], fields["items"] = v.OrderDate, v.Items
	default:
		return nil, fmt.Errorf("unsupported record %T", e)
	}
	return models.NewPatch(fields)
}

// formDate resolves a typed date; blank means today
func formDate(input string, now time.Time) (string, error) {
	if strings.TrimSpace(input) == "" {
		return now.Format(dateparse.Layout), nil
	}
	return dateparse.ResolveAt(input, now)
}
