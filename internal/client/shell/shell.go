// Package shell is the interactive front end of the portal: a line-oriented
// REPL over the session and cart stores.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/atinyakov/SmileCare/internal/catalog"
	"github.com/atinyakov/SmileCare/internal/client/prompt"
	"github.com/atinyakov/SmileCare/internal/models"
	"github.com/atinyakov/SmileCare/internal/service"
	"go.uber.org/zap"
)

const usage = "Available commands: help, register, login, logout, me, book, appointments, " +
	"cancel <id>, upload <path>, records [query], plan, products [query], add <id> [qty], " +
	"qty <id> <n>, remove <id>, cart, checkout, exit"

// Sessions is the session store as used by the shell.
type Sessions interface {
	Register(ctx context.Context, name, email, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	Logout(ctx context.Context) error
	Current() *models.User
	Appointments() []models.Appointment
	NextAppointment() *models.Appointment
	AddAppointment(ctx context.Context, data models.Appointment) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, id int64) error
	SearchRecords(query string) []models.DentalRecord
	AddDentalRecord(ctx context.Context, in service.RecordUpload) (*models.DentalRecord, error)
}

// Cart is the cart store as used by the shell.
type Cart interface {
	Add(ctx context.Context, p models.Product, quantity int) error
	Remove(ctx context.Context, productID int) error
	UpdateQuantity(ctx context.Context, productID, quantity int) error
	Checkout(ctx context.Context) (service.Order, error)
	Items() []models.LineItem
	Total() float64
	Count() int
}

// Shell runs commands read from In and writes results to Out.
type Shell struct {
	Sessions Sessions
	Cart     Cart
	Logger   *zap.Logger

	sc  *bufio.Scanner
	out io.Writer
	p   *prompt.Prompter
}

func New(sessions Sessions, cart Cart, in io.Reader, out io.Writer, log *zap.Logger) *Shell {
	sc := bufio.NewScanner(in)
	return &Shell{
		Sessions: sessions,
		Cart:     cart,
		Logger:   log,
		sc:       sc,
		out:      out,
		p:        prompt.New(sc, out),
	}
}

// Run reads commands until exit, end of input or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		fmt.Fprint(s.out, s.promptLabel())
		if !s.sc.Scan() {
			return s.sc.Err()
		}
		args := strings.Fields(s.sc.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" {
			fmt.Fprintln(s.out, "Bye")
			return nil
		}
		if err := s.exec(ctx, args); err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				return nil
			}
			s.report(err)
		}
	}
	return ctx.Err()
}

func (s *Shell) promptLabel() string {
	if u := s.Sessions.Current(); u != nil {
		return "smilecare(" + u.Email + ")> "
	}
	return "smilecare> "
}

func (s *Shell) exec(ctx context.Context, args []string) error {
	switch args[0] {
	case "help":
		fmt.Fprintln(s.out, usage)
	case "register":
		c, err := s.p.Register()
		if err != nil {
			return err
		}
		u, err := s.Sessions.Register(ctx, c.Name, c.Email, c.Password)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Welcome, %s!\n", u.Name)
	case "login":
		c, err := s.p.Login()
		if err != nil {
			return err
		}
		u, err := s.Sessions.Login(ctx, c.Email, c.Password)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Welcome back, %s!\n", u.Name)
	case "logout":
		if err := s.Sessions.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Logged out")
	case "me":
		u, ok := s.requireUser()
		if !ok {
			return nil
		}
		fmt.Fprintf(s.out, "%s <%s>: %d appointments, %d records\n",
			u.Name, u.Email, len(u.Appointments), len(u.Records))
		if next := s.Sessions.NextAppointment(); next != nil {
			fmt.Fprintf(s.out, "Next appointment: %s on %s at %s with %s\n", next.Type, next.Date, next.Time, next.Doctor)
		}
	case "book":
		if _, ok := s.requireUser(); !ok {
			return nil
		}
		data, err := s.p.Booking()
		if err != nil {
			return err
		}
		apt, err := s.Sessions.AddAppointment(ctx, data)
		if err != nil || apt == nil {
			return err
		}
		fmt.Fprintf(s.out, "Booked #%d: %s at %s with %s\n", apt.ID, apt.Date, apt.Time, apt.Doctor)
	case "appointments":
		if _, ok := s.requireUser(); !ok {
			return nil
		}
		s.printAppointments(s.Sessions.Appointments())
	case "cancel":
		if _, ok := s.requireUser(); !ok {
			return nil
		}
		id, err := s.intArg(args, 1, "cancel <id>")
		if err != nil {
			return err
		}
		if err := s.Sessions.CancelAppointment(ctx, int64(id)); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Appointment cancelled")
	case "upload":
		return s.upload(ctx, args)
	case "records":
		if _, ok := s.requireUser(); !ok {
			return nil
		}
		s.printRecords(s.Sessions.SearchRecords(strings.Join(args[1:], " ")))
	case "plan":
		u, ok := s.requireUser()
		if !ok {
			return nil
		}
		s.printPlan(catalog.TreatmentPlan(u.Name).Summary())
	case "products":
		s.printProducts(catalog.Search(catalog.ProductQuery{Search: strings.Join(args[1:], " ")}))
	case "add":
		return s.add(ctx, args)
	case "qty":
		id, err := s.intArg(args, 1, "qty <id> <n>")
		if err != nil {
			return err
		}
		n, err := s.intArg(args, 2, "qty <id> <n>")
		if err != nil {
			return err
		}
		if err := s.Cart.UpdateQuantity(ctx, id, n); err != nil {
			return err
		}
		s.printCart()
	case "remove":
		id, err := s.intArg(args, 1, "remove <id>")
		if err != nil {
			return err
		}
		if err := s.Cart.Remove(ctx, id); err != nil {
			return err
		}
		s.printCart()
	case "cart":
		s.printCart()
	case "checkout":
		order, err := s.Cart.Checkout(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Order placed: %d items, $%.2f\n", order.Count, order.Total)
	default:
		fmt.Fprintln(s.out, "Unknown command. Type 'help' for a list of commands.")
	}
	return nil
}

func (s *Shell) upload(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: upload <path>")
		return nil
	}
	if _, ok := s.requireUser(); !ok {
		return nil
	}
	path := strings.Join(args[1:], " ")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}
	in, err := s.p.Upload(filepath.Base(path), data)
	if err != nil {
		return err
	}
	rec, err := s.Sessions.AddDentalRecord(ctx, in)
	if err != nil || rec == nil {
		return err
	}
	fmt.Fprintf(s.out, "Uploaded #%d: %s (%s)\n", rec.ID, rec.Name, rec.Format)
	return nil
}

func (s *Shell) add(ctx context.Context, args []string) error {
	id, err := s.intArg(args, 1, "add <id> [qty]")
	if err != nil {
		return err
	}
	qty := 1
	if len(args) > 2 {
		if qty, err = s.intArg(args, 2, "add <id> [qty]"); err != nil {
			return err
		}
	}
	p, ok := catalog.ProductByID(id)
	if !ok {
		fmt.Fprintln(s.out, "Product not found")
		return nil
	}
	if err := s.Cart.Add(ctx, p, qty); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Added %d x %s\n", qty, p.Name)
	return nil
}

func (s *Shell) requireUser() (*models.User, bool) {
	u := s.Sessions.Current()
	if u == nil {
		fmt.Fprintln(s.out, "Please log in first")
		return nil, false
	}
	return u, true
}

func (s *Shell) intArg(args []string, i int, use string) (int, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("%w: usage: %s", service.ErrValidation, use)
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", service.ErrValidation, args[i])
	}
	return n, nil
}

// report prints a user-facing message; storage failures are also logged.
func (s *Shell) report(err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		fmt.Fprintln(s.out, "Invalid input:", err)
	case errors.Is(err, service.ErrConflict):
		fmt.Fprintln(s.out, "An account with this email already exists")
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintln(s.out, "No account with this email")
	case errors.Is(err, service.ErrAuth):
		fmt.Fprintln(s.out, "Wrong password")
	default:
		if s.Logger != nil {
			s.Logger.Error("command failed", zap.Error(err))
		}
		fmt.Fprintln(s.out, "Error:", err)
	}
}

func (s *Shell) printAppointments(apts []models.Appointment) {
	if len(apts) == 0 {
		fmt.Fprintln(s.out, "No appointments")
		return
	}
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTIME\tDOCTOR\tTYPE")
	for _, a := range apts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", a.ID, a.Date, a.Time, a.Doctor, a.Type)
	}
	_ = tw.Flush()
}

func (s *Shell) printRecords(recs []models.DentalRecord) {
	if len(recs) == 0 {
		fmt.Fprintln(s.out, "No records")
		return
	}
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tCATEGORY\tPROVIDER\tFORMAT\tDATE")
	for _, r := range recs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Type, r.Category, r.Provider, r.Format, r.Date)
	}
	_ = tw.Flush()
}

func (s *Shell) printProducts(ps []models.Product) {
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBRAND\tPRICE\tRATING")
	for _, p := range ps {
		fmt.Fprintf(tw, "%d\t%s\t%s\t$%.2f\t%.1f\n", p.ID, p.Name, p.Brand, p.Price, p.Rating)
	}
	_ = tw.Flush()
}

func (s *Shell) printCart() {
	items := s.Cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(s.out, "Cart is empty")
		return
	}
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tSUBTOTAL")
	for _, l := range items {
		fmt.Fprintf(tw, "%d\t%s\t%d\t$%.2f\n", l.Product.ID, l.Product.Name, l.Quantity, l.Subtotal())
	}
	fmt.Fprintf(tw, "\tTotal\t%d\t$%.2f\n", s.Cart.Count(), s.Cart.Total())
	_ = tw.Flush()
}

func (s *Shell) printPlan(p models.PlanSummary) {
	fmt.Fprintf(s.out, "Treatment plan %s for %s (%s), %s\n", p.ID, p.PatientName, p.Dentist, p.Status)
	fmt.Fprintf(s.out, "Progress: %.0f%% (%d of %d completed)\n",
		p.Progress, p.Counts[models.TreatmentCompleted], len(p.Treatments))
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TREATMENT\tPROVIDER\tDATE\tCOST\tINSURANCE\tYOUR COST\tSTATUS")
	for _, t := range p.Treatments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t$%.2f\t$%.2f\t$%.2f\t%s\n",
			t.Name, t.Provider, t.Date, t.Cost, t.InsuranceCoverage, t.OutOfPocket(), t.Status)
	}
	_ = tw.Flush()
	fmt.Fprintf(s.out, "Total $%.2f, insurance $%.2f, out of pocket $%.2f\n", p.TotalCost, p.InsuranceCoverage, p.OutOfPocket)
	fmt.Fprintf(s.out, "Pay in full $%.2f or %d x $%.2f\n", p.PayInFull, models.Installments, p.MonthlyPayment)
	if len(p.NextVisit) > 0 {
		names := make([]string, len(p.NextVisit))
		for i, t := range p.NextVisit {
			names[i] = t.Name
		}
		fmt.Fprintf(s.out, "Next visit %s: %s\n", p.NextVisit[0].Date, strings.Join(names, ", "))
	}
}
