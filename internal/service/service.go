package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"gitlab.com/dirk.krummacker/contact-directory/internal/config"
	"gitlab.com/dirk.krummacker/contact-directory/internal/model"
	"gitlab.com/dirk.krummacker/contact-directory/internal/repository"
	"gitlab.com/dirk.krummacker/contact-directory/pkg/api"
	"go.uber.org/zap"
)

const (
	defaultLimit = 10
	minLimit     = 10
	maxLimit     = 500
)

// sessionKey is the gin context key of the database session of a request.
const sessionKey = "session"

// now is the clock for birthday validation and the upcoming birthdays window.
var now = time.Now

// Service serves the contacts REST API.
type Service struct {
	db             *sqlx.DB
	contacts       *repository.Contacts
	log            *zap.Logger
	birthdayWindow int
	requestLogging bool
}

// New creates the service. The database can be a real database for production use or a mock
// database within unit tests.
func New(db *sqlx.DB, contacts *repository.Contacts, log *zap.Logger, cfg config.Config) *Service {
	return &Service{
		db:             db,
		contacts:       contacts,
		log:            log,
		birthdayWindow: cfg.BirthdayWindow,
		requestLogging: cfg.RequestLogging(),
	}
}

// SetupHttpRouter initializes the REST API router and registers all endpoints.
func (s *Service) SetupHttpRouter() *gin.Engine {
	registerValidations()

	router := gin.New()
	router.Use(gin.CustomRecovery(s.recoverPanic), requestID())
	if s.requestLogging {
		router.Use(s.logRequests())
	} else {
		s.log.Info("Turning off HTTP request logging.")
	}

	contacts := router.Group("/contacts", s.session())
	contacts.GET("/", s.listContacts)
	contacts.GET("/by-id/:id", s.getContactByID)
	contacts.GET("/by-name/:first_name", s.getContactsByFirstName)
	contacts.GET("/by-surname/:last_name", s.getContactsByLastName)
	contacts.GET("/by-email/:email", s.getContactByEmail)
	contacts.GET("/birthdays", s.getUpcomingBirthdays)
	contacts.POST("/", s.createContact)
	contacts.PUT("/:id", s.updateContact)
	contacts.DELETE("/:id", s.deleteContact)
	return router
}

// session acquires a dedicated connection from the pool for the request and returns it to the
// pool when the request is done, whatever the outcome.
func (s *Service) session() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := s.db.Connx(c.Request.Context())
		if err != nil {
			s.internalError(c, errors.Wrap(err, "acquire database connection"))
			return
		}
		defer conn.Close()
		c.Set(sessionKey, conn)
		c.Next()
	}
}

func sessionOf(c *gin.Context) repository.Session {
	return c.MustGet(sessionKey).(repository.Session)
}

// listContacts responds with one page of contacts ordered by id.
//
// The URL parameter 'limit' specifies how many contacts are returned, between 10 and 500, 10 if
// omitted. The URL parameter 'offset' specifies how many contacts are skipped in the beginning.
//
// REST API calls:
//
//	> curl "http://localhost:8080/contacts/"
//	> curl "http://localhost:8080/contacts/?limit=20&offset=60"
func (s *Service) listContacts(c *gin.Context) {
	limit, offset, ok := parseLimitAndOffset(c)
	if !ok {
		return
	}
	contacts, err := s.contacts.List(c.Request.Context(), sessionOf(c), limit, offset)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, contacts)
}

// getContactByID responds with the contact whose id matches the id parameter of the request URL.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/by-id/56
func (s *Service) getContactByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	contact, err := s.contacts.FindByID(c.Request.Context(), sessionOf(c), id)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, contact)
}

// getContactsByFirstName responds with all contacts that have exactly this first name. The list
// is empty if there are none.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/by-name/Erika
func (s *Service) getContactsByFirstName(c *gin.Context) {
	contacts, err := s.contacts.FindByFirstName(c.Request.Context(), sessionOf(c), c.Param("first_name"))
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, contacts)
}

// getContactsByLastName responds with all contacts that have exactly this last name.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/by-surname/Mustermann
func (s *Service) getContactsByLastName(c *gin.Context) {
	contacts, err := s.contacts.FindByLastName(c.Request.Context(), sessionOf(c), c.Param("last_name"))
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, contacts)
}

// getContactByEmail responds with the contact that has this email address.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/by-email/erika@example.com
func (s *Service) getContactByEmail(c *gin.Context) {
	contact, err := s.contacts.FindByEmail(c.Request.Context(), sessionOf(c), c.Param("email"))
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, contact)
}

// getUpcomingBirthdays responds with one page of the contacts whose birthday is today or within
// the configured number of days, regardless of the year. Paging works as for listContacts.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/contacts/birthdays?limit=50"
func (s *Service) getUpcomingBirthdays(c *gin.Context) {
	limit, offset, ok := parseLimitAndOffset(c)
	if !ok {
		return
	}
	contacts, err := s.contacts.FindUpcomingBirthdays(
		c.Request.Context(), sessionOf(c), now(), s.birthdayWindow, limit, offset)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, contacts)
}

// createContact inserts the contact specified in the request's JSON into the database. It responds
// with the full contact data including the newly assigned id.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/ --request "POST" --include --header "Content-Type: application/json" --data '{"first_name": "Hans", "last_name": "Wurst", "email": "hans@example.com", "phone": "+49 0815 4711", "birthday": "1969-03-02"}'
func (s *Service) createContact(c *gin.Context) {
	var payload model.ContactPayload
	if !bindPayload(c, &payload) {
		return
	}
	contact, err := s.contacts.Create(c.Request.Context(), sessionOf(c), payload)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, contact)
}

// updateContact replaces all values of the contact whose id matches the id parameter of the
// request URL with the values of the JSON, and responds with the new version of the contact.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/56 --request "PUT" --include --header "Content-Type: application/json" --data '{"first_name": "Rudi", "last_name": "Völler", "email": "rudi@example.com", "phone": "+49 1234567890", "birthday": "1960-04-13"}'
func (s *Service) updateContact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload model.ContactPayload
	if !bindPayload(c, &payload) {
		return
	}
	contact, err := s.contacts.Update(c.Request.Context(), sessionOf(c), id, payload)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, contact)
}

// deleteContact deletes the contact whose id matches the id parameter of the request URL and
// responds with the contact as it was before.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/56 --request "DELETE"
func (s *Service) deleteContact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	contact, err := s.contacts.Delete(c.Request.Context(), sessionOf(c), id)
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, contact)
}

// parseID reads the id parameter of the request URL, which must be a positive integer.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithFieldErrors(c, api.FieldError{Field: "id", Rule: "int"})
		return 0, false
	}
	if id < 1 {
		abortWithFieldErrors(c, api.FieldError{Field: "id", Rule: "min", Param: "1"})
		return 0, false
	}
	return id, true
}

// parseLimitAndOffset inspects the URL parameters and determines values for limit and offset of
// the result set.
func parseLimitAndOffset(c *gin.Context) (limit int, offset int, success bool) {
	var errs []api.FieldError
	limit = defaultLimit
	if value, present := c.GetQuery("limit"); present {
		var err error
		limit, err = strconv.Atoi(value)
		switch {
		case err != nil:
			errs = append(errs, api.FieldError{Field: "limit", Rule: "int"})
		case limit < minLimit:
			errs = append(errs, api.FieldError{Field: "limit", Rule: "min", Param: strconv.Itoa(minLimit)})
		case limit > maxLimit:
			errs = append(errs, api.FieldError{Field: "limit", Rule: "max", Param: strconv.Itoa(maxLimit)})
		}
	}
	if value, present := c.GetQuery("offset"); present {
		var err error
		offset, err = strconv.Atoi(value)
		switch {
		case err != nil:
			errs = append(errs, api.FieldError{Field: "offset", Rule: "int"})
		case offset < 0:
			errs = append(errs, api.FieldError{Field: "offset", Rule: "min", Param: "0"})
		}
	}
	if len(errs) > 0 {
		abortWithFieldErrors(c, errs...)
		return 0, 0, false
	}
	return limit, offset, true
}
