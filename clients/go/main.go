// Command intake-cli is a small demo client for the intake API.
package main

import (
	"fmt"
	"os"

	"github.com/yousuf-kodexo/livekitPOC/clients/go/intake"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	client := intake.NewClient(os.Getenv("INTAKE_URL"))

	var err error
	switch os.Args[1] {
	case "rooms":
		var rooms []string
		rooms, err = client.Rooms()
		for _, room := range rooms {
			fmt.Println(room)
		}
	case "transcript":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		var conv *intake.ConversationResponse
		conv, err = client.Conversation(os.Args[2])
		if err == nil {
			for _, m := range conv.Messages {
				fmt.Printf("[%s] %s\n", m.Role, m.Text)
			}
		}
	case "connect":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		var resp *intake.SessionResponse
		resp, err = client.Connect(os.Args[2])
		if err == nil {
			fmt.Println(resp.Status + ": " + resp.Message)
		}
	case "end":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		var resp *intake.SessionResponse
		resp, err = client.End(os.Args[2])
		if err == nil {
			fmt.Println(resp.Status + ": " + resp.Message)
		}
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: intake-cli <rooms|transcript ROOM|connect ROOM|end ROOM>")
	fmt.Fprintln(os.Stderr, "  INTAKE_URL sets the API base URL (default http://localhost:8080)")
}
