// Package discovery advertises a running server on the local network
// with multicast DNS and finds advertised servers.
package discovery

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the DNS-SD service advertised by sketchview servers.
const ServiceType = "_sketchview._tcp"

// Advertisement is a running mDNS responder.
type Advertisement struct {
	server *mdns.Server
}

// Advertise announces a server listening on port. info is published as
// TXT records.
func Advertise(port int, info ...string) (*Advertisement, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}
	if len(info) == 0 {
		info = []string{"sketchview"}
	}
	service, err := mdns.NewMDNSService(host, ServiceType, "", "", port, nil, info)
	if err != nil {
		return nil, fmt.Errorf("create mdns service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("start mdns server: %w", err)
	}
	return &Advertisement{server: server}, nil
}

// Shutdown stops answering queries.
func (a *Advertisement) Shutdown() error {
	return a.server.Shutdown()
}

// Browse reports the host:port of every server answering before ctx is
// done.
func Browse(ctx context.Context, found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if addr, ok := Address(e); ok {
				found(addr)
			}
		}
	}()

	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	if deadline, ok := ctx.Deadline(); ok {
		params.Timeout = time.Until(deadline)
	}
	err := mdns.Query(params)
	close(entries)
	<-done
	return err
}

// Address formats the IPv4 endpoint of e.
func Address(e *mdns.ServiceEntry) (string, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return "", false
	}
	return fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port), true
}
