// Package transport owns the datagram sockets at both ends of the feed:
// a sender connected to the multicast group address, and a receiver
// bound with address reuse and joined to the group.
package transport

import (
	"context"
	"net"
	"strconv"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/net/ipv4"
	"golang.org/x/sys/unix"
)

// MaxDatagram bounds a single datagram payload.
const MaxDatagram = 1500

// OpenReceiver binds a UDP socket on (listen, port) with SO_REUSEADDR and
// joins the multicast group on the default interface. Failures here are
// fatal to the consumer.
func OpenReceiver(group string, port int, listen string) (net.PacketConn, error) {
	gip := net.ParseIP(group)
	if gip == nil || !gip.IsMulticast() {
		return nil, errors.Errorf("not a multicast group address: %q", group)
	}

	lc := net.ListenConfig{Control: reuseAddr}
	conn, err := lc.ListenPacket(context.Background(), "udp4", net.JoinHostPort(listen, strconv.Itoa(port)))
	if err != nil {
		return nil, errors.WithMessage(err, "bind receiver socket")
	}

	p := ipv4.NewPacketConn(conn)
	if err := p.JoinGroup(nil, &net.UDPAddr{IP: gip}); err != nil {
		conn.Close()
		return nil, errors.WithMessagef(err, "join group %s", group)
	}
	return conn, nil
}

// OpenSender returns a UDP socket connected to (group, port), so each Write
// sends one datagram to the group. It is not an unconnected socket; sending
// to any other address is not supported.
func OpenSender(group string, port int) (*net.UDPConn, error) {
	gip := net.ParseIP(group)
	if gip == nil || !gip.IsMulticast() {
		return nil, errors.Errorf("not a multicast group address: %q", group)
	}
	conn, err := net.DialUDP("udp4", nil, &net.UDPAddr{IP: gip, Port: port})
	if err != nil {
		return nil, errors.WithMessage(err, "open sender socket")
	}
	return conn, nil
}

func reuseAddr(network, address string, c syscall.RawConn) error {
	var serr error
	err := c.Control(func(fd uintptr) {
		serr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return serr
}
