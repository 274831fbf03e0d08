package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/medagenda/medapp/internal/core/domain"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printWelcome(w io.Writer, s domain.Session) error {
	if s.User == nil {
		return domain.ErrNotAuthenticated
	}
	_, err := fmt.Fprintf(w, "Welcome, %s (%s).\n", s.User.Name, s.User.Role.Label())
	return err
}

func printProfile(w io.Writer, u *domain.User) error {
	if u == nil {
		return domain.ErrNotAuthenticated
	}
	tw := newTable(w)
	fmt.Fprintf(tw, "ID\t%s\n", u.ID)
	fmt.Fprintf(tw, "Name\t%s\n", u.Name)
	fmt.Fprintf(tw, "E-mail\t%s\n", u.Email)
	fmt.Fprintf(tw, "Role\t%s\n", u.Role.Label())
	if u.Role == domain.RoleDoctor {
		fmt.Fprintf(tw, "Specialty\t%s\n", u.Specialty)
	}
	fmt.Fprintf(tw, "Image\t%s\n", u.Image)
	return tw.Flush()
}

func printAppointments(w io.Writer, appointments []domain.Appointment) error {
	if len(appointments) == 0 {
		_, err := fmt.Fprintln(w, "No appointments.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tTIME\tSPECIALTY\tDOCTOR\tPATIENT\tSTATUS\tNOTES")
	for _, a := range appointments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Date, a.Time, a.Specialty, a.DoctorID, a.PatientID, a.Status.Label(), a.Notes)
	}
	return tw.Flush()
}

func printSpecialties(w io.Writer, specialties []domain.Specialty) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, s := range specialties {
		fmt.Fprintf(tw, "%s\t%s\n", s.ID, s.Name)
	}
	return tw.Flush()
}

func printDoctors(w io.Writer, doctors []domain.Doctor) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tSPECIALTY")
	for _, d := range doctors {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.ID, d.Name, d.Specialty)
	}
	return tw.Flush()
}

func printUsers(w io.Writer, users []domain.User) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tE-MAIL\tROLE")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role.Label())
	}
	return tw.Flush()
}
