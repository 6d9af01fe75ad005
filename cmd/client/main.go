package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"gitlab.com/dirk.krummacker/contact-directory/internal/model"
	"gitlab.com/dirk.krummacker/contact-directory/internal/randomgen"
)

// Usage example on the command line:
// > go run main.go
// > go run main.go -base=http://localhost:8080 -sizes=100,1000
func main() {
	basePtr := flag.String("base", "http://localhost:8080", "the base URL of the contact directory")
	var sizes sizeList = []int{1000, 5000, 10000, 50000, 100000}
	flag.Var(&sizes, "sizes", "comma separated numbers of contacts per round")
	flag.Parse()

	b := benchmark{base: *basePtr, client: http.DefaultClient}
	fmt.Println()
	fmt.Println("  Elements      POST       PUT       GET    DELETE ")
	fmt.Println("---------------------------------------------------")
	for _, loops := range sizes {
		fmt.Printf("%10d", loops)
		ids := make([]int64, 0, loops)
		{
			// POST requests
			var duration int64
			for i := 0; i < loops; i++ {
				id, d := b.post(randomContact())
				ids = append(ids, id)
				duration += d
			}
			fmt.Printf("%10d", duration/int64(loops*1000))
		}
		{
			// PUT requests
			f := func(id int64) int64 {
				return b.putGetDelete(http.MethodPut, fmt.Sprintf("/contacts/%d", id), randomContact())
			}
			callInLoop(ids, f)
		}
		{
			// GET requests
			f := func(id int64) int64 {
				return b.putGetDelete(http.MethodGet, fmt.Sprintf("/contacts/by-id/%d", id), nil)
			}
			callInLoop(ids, f)
		}
		{
			// DELETE requests
			f := func(id int64) int64 {
				return b.putGetDelete(http.MethodDelete, fmt.Sprintf("/contacts/%d", id), nil)
			}
			callInLoop(ids, f)
		}
		fmt.Println()
	}
}

// randomContact returns the JSON of a random contact. Every call has a different email address.
func randomContact() []byte {
	body, err := json.Marshal(randomgen.Contact(time.Now()))
	if err != nil {
		panic(err)
	}
	return body
}

// callInLoop calls f for all ids in random order and prints the mean duration in microseconds.
func callInLoop(ids []int64, f func(id int64) int64) {
	shuffled := make([]int64, len(ids))
	copy(shuffled, ids)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	var duration int64
	for _, id := range shuffled {
		duration += f(id)
	}
	fmt.Printf("%10d", duration/int64(len(ids)*1000))
}

type benchmark struct {
	base   string
	client *http.Client
}

func (b benchmark) post(body []byte) (int64, int64) {
	resBody, duration := b.send(http.MethodPost, "/contacts/", bytes.NewReader(body), http.StatusCreated)
	var contact model.Contact
	err := json.Unmarshal(resBody, &contact)
	if err != nil {
		fmt.Println("could not unmarshal JSON", err)
		panic(err)
	}
	return contact.Id, duration
}

func (b benchmark) putGetDelete(method string, path string, body []byte) int64 {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	_, duration := b.send(method, path, bodyReader, http.StatusOK)
	return duration
}

// send executes the request and returns the response body and the duration in nanoseconds.
func (b benchmark) send(method string, path string, bodyReader io.Reader, expectedStatus int) ([]byte, int64) {
	req, err := http.NewRequest(method, b.base+path, bodyReader)
	if err != nil {
		fmt.Println("could not create request", err)
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	before := time.Now().UnixNano()
	res, err := b.client.Do(req)
	if err != nil {
		fmt.Println("error making http request", err)
		panic(err)
	}
	defer res.Body.Close()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Println("could not read response body", err)
		panic(err)
	}
	after := time.Now().UnixNano()
	if res.StatusCode != expectedStatus {
		panic(fmt.Sprintf("%s %s answered %s: %s", method, path, res.Status, resBody))
	}
	return resBody, after - before
}
