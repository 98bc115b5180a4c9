// Package mapsclient is the entry point for constructing a client that implements
// the gmaps.Client interface.
//
// It wires rate limiting, retries with exponential backoff and response
// classification behind the request builders defined in the gmaps package. Most
// applications import mapsclient to build a client and then use the returned
// gmaps.Client to create requests.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/gmaps/pkg/gmaps"
//	  "github.com/fivetwenty-io/gmaps/pkg/mapsclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := mapsclient.New(&gmaps.Config{
//	    APIKey: "AIza...",
//	    RateLimits: map[gmaps.Category]gmaps.RateLimit{
//	      gmaps.CategoryAll:   {Requests: 50, Per: time.Second},
//	      gmaps.CategoryRoads: {Requests: 10, Per: time.Second},
//	    },
//	  })
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  resp, err := cli.NearestRoads(gmaps.LatLng{Lat: 60.170880, Lng: 24.942795}).Execute(ctx)
//	  if err != nil {
//	    if gmaps.IsServiceStatus(err, gmaps.StatusInvalidArgument) { /* bad input */ }
//	    log.Fatal(err)
//	  }
//	  _ = resp.SnappedPoints
//	}
//
// Building and sending
//
// Every request builder offers Build, Get and Execute. Build assembles the query
// string and rejects conflicting or missing parameters. Get sends an already built
// request and fails with gmaps.ErrQueryNotBuilt otherwise, before any budget is
// spent. Execute does both.
//
// Errors
//
// Failures are returned as *gmaps.Error. Kind tells whether the failure was
// transient (retries were exhausted) or permanent; Service carries the status and
// message a service reported. Context cancellation is returned wrapped and can be
// tested with errors.Is.
//
// Observability
//
// Set Config.Logger for structured logs, Config.MetricsRegisterer for Prometheus
// metrics, Config.Events to publish every attempt to NATS, or Config.OnAttempt to
// receive attempt events directly.
package mapsclient
