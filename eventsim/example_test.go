package eventsim_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hupe1980/pairq/eventsim"
)

func Example() {
	sim, err := eventsim.New()
	if err != nil {
		log.Fatal(err)
	}

	if _, err := sim.After(20*time.Millisecond, func(now time.Duration) {
		fmt.Println("pong", now)
	}); err != nil {
		log.Fatal(err)
	}

	if _, err := sim.After(10*time.Millisecond, func(now time.Duration) {
		fmt.Println("ping", now)
	}); err != nil {
		log.Fatal(err)
	}

	if err := sim.Run(context.Background()); err != nil {
		log.Fatal(err)
	}

	// Output:
	// ping 10ms
	// pong 20ms
}
