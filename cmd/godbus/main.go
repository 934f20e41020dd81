/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Command godbus is a thin interactive client over the connection engine:
// it dials a bus address, drives the handshake to completion with Flush,
// and issues one Ping, Introspect or method Call before exiting. It exists
// to exercise the engine end-to-end from outside its own test suite.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nabbar/godbus/cmd/godbus/internal/bus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var address string
	var timeoutMS int

	root := &cobra.Command{
		Use:           "godbus",
		Short:         "Drive a bus connection from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&address, "address", "", "bus address (default: session bus, then system bus)")
	root.PersistentFlags().IntVar(&timeoutMS, "timeout-ms", 2000, "call timeout in milliseconds")

	root.AddCommand(newPingCmd(&address, &timeoutMS))
	root.AddCommand(newIntrospectCmd(&address, &timeoutMS))
	root.AddCommand(newCallCmd(&address, &timeoutMS))

	return root
}

func newPingCmd(address *string, timeoutMS *int) *cobra.Command {
	return &cobra.Command{
		Use:   "ping <destination>",
		Short: "Call org.freedesktop.DBus.Peer.Ping on a destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := bus.PingRequest{Address: *address, Destination: args[0], TimeoutMS: *timeoutMS}
			if err := req.Validate(); err != nil {
				return err
			}
			if err := bus.Ping(req); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "pong from %s\n", args[0])
			return nil
		},
	}
}

func newIntrospectCmd(address *string, timeoutMS *int) *cobra.Command {
	return &cobra.Command{
		Use:   "introspect <destination> <path>",
		Short: "Call org.freedesktop.DBus.Introspectable.Introspect",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := bus.IntrospectRequest{Address: *address, Destination: args[0], Path: args[1], TimeoutMS: *timeoutMS}
			if err := req.Validate(); err != nil {
				return err
			}
			xml, err := bus.Introspect(req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), xml)
			return nil
		},
	}
}

func newCallCmd(address *string, timeoutMS *int) *cobra.Command {
	return &cobra.Command{
		Use:   "call <destination> <path> <interface> <member>",
		Short: "Issue an arbitrary method call and print the reply body",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := bus.CallRequest{
				Address:     *address,
				Destination: args[0],
				Path:        args[1],
				Interface:   args[2],
				Member:      args[3],
				TimeoutMS:   *timeoutMS,
			}
			if err := req.Validate(); err != nil {
				return err
			}
			reply, err := bus.Call(req)
			if err != nil {
				return err
			}
			color.New(color.FgCyan).Fprintf(cmd.OutOrStdout(), "%v\n", reply.Body)
			return nil
		},
	}
}
