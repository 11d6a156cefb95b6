// stun-dump decodes STUN messages from hex input and prints their
// structure, verifying fingerprints along the way.
//
// Usage:
//
//	stun-dump [options] [hexstring ...]
//
// With no arguments, hex strings are read from stdin, one message per
// line. Whitespace inside the hex is ignored.
//
// Options:
//
//	-values  also print attribute values as hex
//
// Example:
//
//	stun-dump 000100002112a442000000000000000000000000
package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/backkem/stun/pkg/stun"
)

var printValues = flag.Bool("values", false, "also print attribute values as hex")

func main() {
	flag.Parse()

	inputs := flag.Args()
	if len(inputs) == 0 {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				inputs = append(inputs, line)
			}
		}
		if err := sc.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "stun-dump: read stdin: %v\n", err)
			os.Exit(1)
		}
	}

	exit := 0
	for _, in := range inputs {
		if err := dump(os.Stdout, in); err != nil {
			fmt.Fprintf(os.Stderr, "stun-dump: %v\n", err)
			exit = 1
		}
	}
	os.Exit(exit)
}

// dump decodes one hex-encoded message and prints it to w.
func dump(w *os.File, in string) error {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t':
			return -1
		}
		return r
	}, in)

	data, err := hex.DecodeString(clean)
	if err != nil {
		return fmt.Errorf("bad hex input: %v", err)
	}

	msg, err := stun.Decode(data)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s, method 0x%03X, %d bytes\n",
		msg.Type.Class, uint16(msg.Type.Method), len(data))
	fmt.Fprintf(w, "  transaction id: %x\n", msg.TransactionID[:])
	if msg.Fingerprint {
		fmt.Fprintln(w, "  fingerprint:    verified")
	}

	for _, a := range msg.Attributes {
		fmt.Fprintf(w, "  attribute 0x%04X (%s), %d bytes\n",
			uint16(a.Type), attrName(a.Type), len(a.Value))
		if *printValues && len(a.Value) > 0 {
			fmt.Fprintf(w, "    %x\n", a.Value)
		}
	}
	return nil
}

// attrName maps the attribute types this module knows about.
func attrName(t stun.AttrType) string {
	switch t {
	case stun.AttrMappedAddress:
		return "MAPPED-ADDRESS"
	case stun.AttrErrorCode:
		return "ERROR-CODE"
	case stun.AttrXORMappedAddress:
		return "XOR-MAPPED-ADDRESS"
	case stun.AttrSoftware:
		return "SOFTWARE"
	case stun.AttrFingerprint:
		return "FINGERPRINT"
	default:
		return "unknown"
	}
}
