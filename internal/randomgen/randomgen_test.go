package randomgen

import (
	"net/mail"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	for i := 0; i < 100; i++ {
		first := PickFirstName()
		assert.GreaterOrEqual(t, len(first), 2)
		last := PickLastName() + "-" + PickLastName()
		assert.LessOrEqual(t, len(last), 50)
	}
}

func TestPhone(t *testing.T) {
	for i := 0; i < 100; i++ {
		phone := Phone()
		assert.GreaterOrEqual(t, len(phone), 9, phone)
		assert.LessOrEqual(t, len(phone), 17, phone)
	}
}

func TestBirthday(t *testing.T) {
	today := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 100; i++ {
		birthday := Birthday(today)
		assert.True(t, birthday.Before(today), birthday.String())
		assert.True(t, birthday.After(today.AddDate(-101, 0, 0)), birthday.String())
	}
}

func TestEmailUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		email := Email("Erika")
		_, err := mail.ParseAddress(email)
		require.NoError(t, err, email)
		assert.LessOrEqual(t, len(email), 150)
		assert.False(t, seen[email], "duplicate email "+email)
		seen[email] = true
	}
}

func TestContact(t *testing.T) {
	today := time.Now()
	c := Contact(today)
	assert.NotEmpty(t, c.FirstName)
	assert.NotEmpty(t, c.LastName)
	assert.Contains(t, c.Email, "@example.com")
	assert.Nil(t, c.Other)
	assert.True(t, c.Birthday.Before(today))
}
