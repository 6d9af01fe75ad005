package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Usage example on the command line:
// > go run main.go -url=http://localhost:8080/contacts/ -interval=2s -timeout=2m
func main() {
	urlPtr := flag.String("url", "http://localhost:8080/contacts/", "the URL that must answer with 200 OK")
	intervalPtr := flag.Duration("interval", 5*time.Second, "the time between two attempts")
	timeoutPtr := flag.Duration("timeout", 0, "give up after this long, never if 0")
	flag.Parse()

	if !waitUntilAvailable(http.DefaultClient, *urlPtr, *intervalPtr, *timeoutPtr) {
		fmt.Printf("%s not available after %s", *urlPtr, *timeoutPtr)
		fmt.Println()
		os.Exit(1)
	}
}

// waitUntilAvailable polls url until it answers with 200 OK. It returns false if the timeout
// passes first.
func waitUntilAvailable(client *http.Client, url string, interval time.Duration, timeout time.Duration) bool {
	var totalWaitTime time.Duration
	for {
		res, err := client.Get(url)
		if err == nil {
			res.Body.Close()
			if res.StatusCode == http.StatusOK {
				fmt.Println(res.Status)
				return true
			}
			fmt.Println(res.Status)
		} else {
			fmt.Println(err)
		}
		if timeout > 0 && totalWaitTime+interval > timeout {
			return false
		}
		totalWaitTime += interval
		fmt.Printf("Waiting %s", totalWaitTime)
		fmt.Println()
		time.Sleep(interval)
	}
}
