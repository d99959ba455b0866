package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"tonsor/config"
	"tonsor/infras/backend"
	bookingService "tonsor/internal/domains/booking/service"
	directoryModel "tonsor/internal/domains/directory/model"
	directoryService "tonsor/internal/domains/directory/service"
	sessionDto "tonsor/internal/domains/session/model/dto"
	sessionService "tonsor/internal/domains/session/service"
	"tonsor/internal/domains/session/store"
	slotsService "tonsor/internal/domains/slots/service"
	"tonsor/shared/constant"
	"tonsor/shared/failure"
)

// App is the terminal front-end over the booking workflow. Every command
// restores the stored session first so the output matches what the user
// would see after reopening the mobile app.
type App struct {
	cfg       *config.Config
	backend   *backend.Client
	store     store.Store
	session   sessionService.Session
	directory directoryService.Directory
	slots     slotsService.Slots
	booking   bookingService.Controller
}

func New(
	cfg *config.Config,
	backendClient *backend.Client,
	sessionStore store.Store,
	session sessionService.Session,
	directory directoryService.Directory,
	slots slotsService.Slots,
	booking bookingService.Controller,
) *App {
	return &App{
		cfg:       cfg,
		backend:   backendClient,
		store:     sessionStore,
		session:   session,
		directory: directory,
		slots:     slots,
		booking:   booking,
	}
}

func (a *App) Run(ctx context.Context, args []string) error {
	app := &cli.App{
		Name:  "tonsor",
		Usage: "book barbershop appointments from the terminal",
		Commands: []*cli.Command{
			a.probeCommand(),
			a.loginCommand(),
			a.registerCommand(),
			a.logoutCommand(),
			a.whoamiCommand(),
			a.staffCommand(),
			a.selectCommand(),
			a.slotsCommand(),
			a.bookCommand(),
			a.walkInCommand(),
			a.detailsCommand(),
			a.cancelCommand(),
		},
	}

	return app.RunContext(ctx, args) //nolint:wrapcheck
}

// restore loads the persisted session, tolerating a missing or expired
// token. Commands that need authentication check the result themselves.
func (a *App) restore(ctx context.Context) {
	if _, _, err := a.session.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("could not restore session")
	}
}

func (a *App) probeCommand() *cli.Command {
	return &cli.Command{
		Name:  "probe",
		Usage: "check that the booking backend is reachable",
		Action: func(c *cli.Context) error {
			if err := a.backend.Probe(c.Context); err != nil {
				return describe(err)
			}

			fmt.Println("backend is reachable")

			return nil
		},
	}
}

func (a *App) loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in and persist the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: func(c *cli.Context) error {
			identity, err := a.session.Login(c.Context, sessionDto.LoginRequest{
				Email:    c.String("email"),
				Password: c.String("password"),
			})
			if err != nil {
				return describe(err)
			}

			fmt.Printf("signed in as %s (%s)\n", identity.Name, identity.Role)

			return nil
		},
	}
}

func (a *App) registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create an account and sign in",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: func(c *cli.Context) error {
			identity, err := a.session.Register(c.Context, sessionDto.RegisterRequest{
				Name:     c.String("name"),
				Email:    c.String("email"),
				Password: c.String("password"),
			})
			if err != nil {
				return describe(err)
			}

			fmt.Printf("welcome, %s\n", identity.Name)

			return nil
		},
	}
}

func (a *App) logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "sign out and clear the stored session",
		Action: func(c *cli.Context) error {
			a.restore(c.Context)

			if err := a.session.Logout(c.Context); err != nil {
				return describe(err)
			}

			fmt.Println("signed out")

			return nil
		},
	}
}

func (a *App) whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the identity behind the stored session",
		Action: func(c *cli.Context) error {
			a.restore(c.Context)

			identity, ok := a.session.CurrentIdentity()
			if !ok {
				fmt.Println("not signed in")

				return nil
			}

			fmt.Printf("%s <%s> role=%s\n", identity.Name, identity.Email, identity.Role)

			return nil
		},
	}
}

func (a *App) staffCommand() *cli.Command {
	return &cli.Command{
		Name:    "staff",
		Aliases: []string{"barbers"},
		Usage:   "list the staff members available for booking",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "shop", Usage: "restrict the roster to one shop", Value: 0},
		},
		Action: func(c *cli.Context) error {
			a.restore(c.Context)

			roster, mode, err := a.directory.LoadAssignableStaff(c.Context, c.Int64("shop"))
			if err != nil {
				return describe(err)
			}

			if mode == directoryService.ModeDegraded {
				fmt.Println("note: could not reach the directory, showing placeholder staff")
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tNAME\tSHOP\tHOURS\tDAYS")

			for _, member := range roster {
				fmt.Fprintf(writer, "%d\t%s\t%s\t%02d:00-%02d:00\t%s\n",
					member.ID, member.Name, member.ShopName,
					member.StartHour, member.EndHour, formatWorkDays(member.WorkDays))
			}

			return writer.Flush() //nolint:wrapcheck
		},
	}
}

func (a *App) selectCommand() *cli.Command {
	return &cli.Command{
		Name:  "select",
		Usage: "remember a staff member for the next booking",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "barber", Required: true},
		},
		Action: func(c *cli.Context) error {
			a.restore(c.Context)

			member, err := a.findStaff(c.Context, c.Int64("barber"))
			if err != nil {
				return describe(err)
			}

			err = a.store.Set(c.Context, constant.StoreKeySelectedStaff, strconv.FormatInt(member.ID, 10))
			if err != nil {
				return describe(err)
			}

			fmt.Printf("selected %s\n", member.Name)

			return nil
		},
	}
}

func (a *App) slotsCommand() *cli.Command {
	return &cli.Command{
		Name:  "slots",
		Usage: "show the availability grid for a day",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "barber", Usage: "staff member id (defaults to the remembered selection)"},
			&cli.StringFlag{Name: "date", Required: true, Usage: "day to inspect, formatted 2006-01-02"},
		},
		Action: func(c *cli.Context) error {
			a.restore(c.Context)

			member, err := a.resolveStaff(c)
			if err != nil {
				return describe(err)
			}

			grid, err := a.slots.DayGrid(c.Context, member, c.String("date"))
			if err != nil {
				return describe(err)
			}

			if len(grid.Slots) == 0 {
				fmt.Printf("%s does not work on %s\n", member.Name, grid.Date)

				return nil
			}

			for _, slot := range grid.Slots {
				marker := "free"
				if slot.Booked {
					marker = "booked"
				}

				fmt.Printf("%s  %s\n", slot.Time, marker)
			}

			return nil
		},
	}
}

func (a *App) bookCommand() *cli.Command {
	return &cli.Command{
		Name:  "book",
		Usage: "book an appointment",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "barber", Usage: "staff member id (defaults to the remembered selection)"},
			&cli.StringFlag{Name: "date", Required: true},
			&cli.StringFlag{Name: "time", Required: true, Usage: "slot start, formatted 15:04"},
			&cli.StringFlag{Name: "service", Usage: "service type (defaults per role)"},
		},
		Action: func(c *cli.Context) error {
			a.restore(c.Context)

			if err := a.stageSlot(c); err != nil {
				return describe(err)
			}

			result, err := a.booking.Submit(c.Context, c.String("service"))
			if err != nil {
				return describe(err)
			}

			return reportResult(result)
		},
	}
}

func (a *App) walkInCommand() *cli.Command {
	return &cli.Command{
		Name:  "walkin",
		Usage: "book on behalf of a walk-in client (staff only)",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "barber", Usage: "staff member id (defaults to the remembered selection)"},
			&cli.StringFlag{Name: "date", Required: true},
			&cli.StringFlag{Name: "time", Required: true},
			&cli.StringFlag{Name: "name", Required: true, Usage: "client name"},
			&cli.StringFlag{Name: "phone", Required: true, Usage: "client phone"},
			&cli.StringFlag{Name: "service", Usage: "service type (defaults per role)"},
		},
		Action: func(c *cli.Context) error {
			a.restore(c.Context)

			if err := a.stageSlot(c); err != nil {
				return describe(err)
			}

			result, err := a.booking.SubmitWalkIn(c.Context, c.String("name"), c.String("phone"), c.String("service"))
			if err != nil {
				return describe(err)
			}

			return reportResult(result)
		},
	}
}

func (a *App) detailsCommand() *cli.Command {
	return &cli.Command{
		Name:  "details",
		Usage: "inspect who holds a slot (staff only)",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "barber", Usage: "staff member id (defaults to the remembered selection)"},
			&cli.StringFlag{Name: "date", Required: true},
			&cli.StringFlag{Name: "time", Required: true},
		},
		Action: func(c *cli.Context) error {
			a.restore(c.Context)

			member, err := a.resolveStaff(c)
			if err != nil {
				return describe(err)
			}

			a.booking.SelectStaff(member)

			date := c.String("date")
			if _, err = a.booking.SelectDate(c.Context, date); err != nil {
				return describe(err)
			}

			details, err := a.booking.SlotDetails(c.Context, date+"-"+c.String("time"))
			if err != nil {
				return describe(err)
			}

			if !details.Found || details.Appointment == nil {
				fmt.Println("the slot is free")

				return nil
			}

			appointment := details.Appointment
			fmt.Printf("appointment #%d: %s (%s) at %s %s\n",
				appointment.ID, appointment.ClientName, appointment.ServiceType,
				appointment.Date, appointment.Time)

			return nil
		},
	}
}

func (a *App) cancelCommand() *cli.Command {
	return &cli.Command{
		Name:  "cancel",
		Usage: "cancel an appointment by id (staff only)",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "id", Required: true},
		},
		Action: func(c *cli.Context) error {
			a.restore(c.Context)

			if err := a.booking.CancelAppointment(c.Context, c.Int64("id")); err != nil {
				return describe(err)
			}

			fmt.Println("appointment cancelled")

			return nil
		},
	}
}

// stageSlot walks the booking controller through staff, date and slot
// selection using the command flags.
func (a *App) stageSlot(c *cli.Context) error {
	member, err := a.resolveStaff(c)
	if err != nil {
		return err
	}

	a.booking.SelectStaff(member)

	date := c.String("date")
	if _, err = a.booking.SelectDate(c.Context, date); err != nil {
		return err
	}

	return a.booking.SelectSlot(date + "-" + c.String("time"))
}

// resolveStaff picks the staff member from the --barber flag, falling back
// to the id remembered by the select command.
func (a *App) resolveStaff(c *cli.Context) (directoryModel.StaffMember, error) {
	staffID := c.Int64("barber")

	if staffID == 0 {
		raw, err := a.store.Get(c.Context, constant.StoreKeySelectedStaff)
		if err != nil {
			return directoryModel.StaffMember{}, failure.BadRequestFromString("no staff member selected, pass --barber or run select first")
		}

		staffID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return directoryModel.StaffMember{}, failure.BadRequestFromString("stored staff selection is corrupt, run select again")
		}
	}

	return a.findStaff(c.Context, staffID)
}

func (a *App) findStaff(ctx context.Context, staffID int64) (directoryModel.StaffMember, error) {
	roster, _, err := a.directory.LoadAssignableStaff(ctx, 0)
	if err != nil {
		return directoryModel.StaffMember{}, err
	}

	for _, member := range roster {
		if member.ID == staffID {
			return member, nil
		}
	}

	return directoryModel.StaffMember{}, failure.NotFound("staff member")
}

func reportResult(result bookingService.Result) error {
	if result.Conflict {
		fmt.Println(result.Message)

		return nil
	}

	fmt.Printf("%s (appointment #%d)\n", result.Message, result.AppointmentID)

	return nil
}

func formatWorkDays(days []int) string {
	names := []string{"", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

	parts := make([]string, 0, len(days))
	for _, day := range days {
		if day >= 1 && day <= 7 {
			parts = append(parts, names[day])
		}
	}

	return strings.Join(parts, ",")
}

// describe strips the wrapped cause so command output shows the message the
// mobile app would have shown.
func describe(err error) error {
	if failure.IsTimeout(err) {
		return cli.Exit("the server is taking too long to respond, try again later", 1)
	}

	return cli.Exit(err.Error(), 1)
}
