package sandbox

import "fmt"

// Seed fills d with a small fixed data set sharing one password.
func Seed(d *Directory, password string) error {
	for _, name := range []string{"Cardiologia", "Pediatria", "Dermatologia"} {
		d.AddSpecialty(name)
	}

	accounts := []NewAccount{
		{Name: "Administrador", Email: "admin@medapp.dev", Tipo: TipoAdmin},
		{Name: "Dra. Ana Souza", Email: "ana.souza@medapp.dev", Tipo: TipoMedico, Specialty: "Cardiologia"},
		{Name: "Dr. Carlos Lima", Email: "carlos.lima@medapp.dev", Tipo: TipoMedico, Specialty: "Pediatria"},
		{Name: "Maria Oliveira", Email: "maria@medapp.dev", Tipo: TipoPaciente},
	}
	for _, acc := range accounts {
		acc.Password = password
		if _, err := d.CreateAccount(acc); err != nil {
			return fmt.Errorf("seed %s: %w", acc.Email, err)
		}
	}
	return nil
}
