// Package randomgen produces plausible random contacts for load tests and integration tests.
package randomgen

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"gitlab.com/dirk.krummacker/contact-directory/internal/model"
)

var firstNames = []string{
	"Anna", "Ben", "Carla", "David", "Emma", "Felix", "Greta", "Hannes", "Ida", "Jonas",
	"Klara", "Lukas", "Mia", "Noah", "Olga", "Paul", "Quirin", "Rosa", "Simon", "Thea",
	"Ulrich", "Vera", "Walter", "Xenia", "Yusuf", "Zoe",
}

var lastNames = []string{
	"Abel", "Becker", "Conrad", "Dietrich", "Engel", "Fischer", "Graf", "Hoffmann", "Illner",
	"Jung", "Keller", "Lang", "Meyer", "Neumann", "Otto", "Peters", "Quast", "Richter",
	"Schmidt", "Thiel", "Ulmer", "Vogel", "Wagner", "Xander", "Young", "Zimmermann",
}

var countryCodes = []string{"+1", "+33", "+39", "+43", "+44", "+49", "+420"}

// PickFirstName returns one of a fixed set of first names.
func PickFirstName() string {
	return firstNames[rand.IntN(len(firstNames))]
}

// PickLastName returns one of a fixed set of last names. None is longer than 10 characters, so two
// of them joined by a hyphen are still a valid last name.
func PickLastName() string {
	return lastNames[rand.IntN(len(lastNames))]
}

// Phone returns a phone number with country code, like "+49 0815 4711".
func Phone() string {
	return fmt.Sprintf("%s %03d %03d %04d",
		countryCodes[rand.IntN(len(countryCodes))], rand.IntN(1000), rand.IntN(1000), rand.IntN(10000))
}

// Birthday returns a date between one day and a hundred years before today.
func Birthday(today time.Time) model.Date {
	d := today.AddDate(0, 0, -1-rand.IntN(100*365))
	return model.NewDate(d.Year(), d.Month(), d.Day())
}

// Email returns an address that starts with the given name and is unique across calls.
func Email(firstName string) string {
	return fmt.Sprintf("%s.%s@example.com", strings.ToLower(firstName), uuid.NewString())
}

// Contact returns a complete, valid contact payload.
func Contact(today time.Time) model.ContactPayload {
	first := PickFirstName()
	return model.ContactPayload{
		FirstName: first,
		LastName:  PickLastName(),
		Email:     Email(first),
		Phone:     Phone(),
		Birthday:  Birthday(today),
	}
}
