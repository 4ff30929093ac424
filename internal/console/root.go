// Package console implements relayctl, the operator console. It reads the
// relay's REST surface only and never changes room state.
package console

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	serverKey  = "server"
	timeoutKey = "timeout"
)

// NewRootCmd builds the relayctl command tree.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("RELAYCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "relayctl",
		Short:         "Inspect a running Handshake signaling relay",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().String(serverKey, "http://127.0.0.1:8080", "relay base URL (RELAYCTL_SERVER)")
	root.PersistentFlags().Duration(timeoutKey, 5*time.Second, "request timeout (RELAYCTL_TIMEOUT)")
	_ = v.BindPFlag(serverKey, root.PersistentFlags().Lookup(serverKey))
	_ = v.BindPFlag(timeoutKey, root.PersistentFlags().Lookup(timeoutKey))

	clientFor := func() *Client {
		return NewClient(v.GetString(serverKey), v.GetDuration(timeoutKey))
	}

	root.AddCommand(newStatsCmd(clientFor))
	root.AddCommand(newRoomsCmd(clientFor))
	return root
}
