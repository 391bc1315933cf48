// Package prompt asks the shell user for the multi-field inputs of signup,
// login, booking and record upload.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/atinyakov/SmileCare/internal/catalog"
	"github.com/atinyakov/SmileCare/internal/models"
	"github.com/atinyakov/SmileCare/internal/service"
)

// ErrAborted is returned when input ends in the middle of a prompt.
var ErrAborted = errors.New("input closed")

// DateLayout is the appointment date format, e.g. "June 1, 2024".
const DateLayout = "January 2, 2006"

// Prompter reads answers line by line from a scanner shared with the shell.
type Prompter struct {
	sc  *bufio.Scanner
	out io.Writer
	now func() time.Time
}

func New(sc *bufio.Scanner, out io.Writer) *Prompter {
	return &Prompter{sc: sc, out: out, now: time.Now}
}

// Line prints label and returns the trimmed answer.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", err
		}
		return "", ErrAborted
	}
	return strings.TrimSpace(p.sc.Text()), nil
}

// Credentials holds signup or login input.
type Credentials struct {
	Name     string
	Email    string
	Password string
}

// Register asks for name, email and password.
func (p *Prompter) Register() (Credentials, error) {
	name, err := p.Line("Full name: ")
	if err != nil {
		return Credentials{}, err
	}
	c, err := p.Login()
	c.Name = name
	return c, err
}

// Login asks for email and password.
func (p *Prompter) Login() (Credentials, error) {
	var c Credentials
	var err error
	if c.Email, err = p.Line("Email: "); err != nil {
		return c, err
	}
	c.Password, err = p.Line("Password: ")
	return c, err
}

// Booking walks through doctor, time, appointment type and date.
// An empty date means today.
func (p *Prompter) Booking() (models.Appointment, error) {
	doctors := catalog.Doctors()
	for i, d := range doctors {
		fmt.Fprintf(p.out, "  %d) %s, %s\n", i+1, d.Name, d.Specialty)
	}
	di, err := p.choose("Doctor: ", len(doctors))
	if err != nil {
		return models.Appointment{}, err
	}
	doc := doctors[di]

	for i, t := range doc.AvailableTimes {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, t)
	}
	ti, err := p.choose("Time: ", len(doc.AvailableTimes))
	if err != nil {
		return models.Appointment{}, err
	}

	types := catalog.AppointmentTypes()
	for i, t := range types {
		fmt.Fprintf(p.out, "  %d) %s (%s, %s)\n", i+1, t.Name, t.Duration, t.Price)
	}
	ki, err := p.choose("Appointment type: ", len(types))
	if err != nil {
		return models.Appointment{}, err
	}

	date, err := p.Line("Date (" + DateLayout + ", empty for today): ")
	if err != nil {
		return models.Appointment{}, err
	}
	if date == "" {
		date = p.now().Format(DateLayout)
	} else if _, perr := time.Parse(DateLayout, date); perr != nil {
		return models.Appointment{}, fmt.Errorf("%w: date %q is not like %q", service.ErrValidation, date, DateLayout)
	}

	return models.Appointment{
		Date:   date,
		Time:   doc.AvailableTimes[ti],
		Doctor: doc.Name,
		Type:   types[ki].Name,
	}, nil
}

// Upload asks for the optional metadata of a file that is being uploaded.
// Blank answers keep the store's defaults.
func (p *Prompter) Upload(name string, data []byte) (service.RecordUpload, error) {
	mimeType := service.DetectMIME(name, data)
	in := service.RecordUpload{
		Name:        name,
		MIMEType:    mimeType,
		FileContent: service.DataURL(mimeType, data),
	}
	var err error
	if in.Type, err = p.Line("Record type (e.g. X-Ray): "); err != nil {
		return in, err
	}
	if in.Category, err = p.Line("Category (e.g. Radiology): "); err != nil {
		return in, err
	}
	in.Provider, err = p.Line("Provider (empty for " + service.DefaultProvider + "): ")
	return in, err
}

// choose reads a 1-based menu choice and returns it 0-based.
func (p *Prompter) choose(label string, n int) (int, error) {
	s, err := p.Line(label)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(s)
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("%w: pick a number between 1 and %d", service.ErrValidation, n)
	}
	return i - 1, nil
}
