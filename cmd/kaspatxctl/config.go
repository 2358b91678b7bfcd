package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/codecustard/kaspa/config"
)

const (
	addressSubCmd       = "address"
	sendSubCmd          = "send"
	krc20DeploySubCmd   = "krc20-deploy"
	krc20MintSubCmd     = "krc20-mint"
	krc20TransferSubCmd = "krc20-transfer"
	krc20RevealSubCmd   = "krc20-reveal"
)

// commonFlags is embedded into every subcommand config, mirroring kaspad's
// cmd/kaspawallet NetworkFlags pattern: one shared block of connection and
// policy flags every subcommand accepts identically.
type commonFlags struct {
	APIHost string `long:"api-host" short:"a" description:"REST API host to query and broadcast through" required:"true"`
	Network string `long:"network" short:"n" description:"mainnet or testnet" default:"mainnet"`
	MaxFee  uint64 `long:"max-fee" description:"upper bound on the fee this invocation may pay, in sompi" default:"100000"`
	LogDir  string `long:"logdir" description:"directory to write a rotated trace log to; traces go nowhere if unset"`
}

func (f *commonFlags) resolve() (*config.Config, error) {
	cfg := &config.Config{
		APIHost:        f.APIHost,
		Network:        config.Network(f.Network),
		MaxFee:         f.MaxFee,
		DefaultFeeRate: 1000,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type addressConfig struct {
	PublicKey string `long:"public-key" short:"p" description:"public key encoded in hex (32 bytes for Schnorr, 33 for ECDSA)" required:"true"`
	ECDSA     bool   `long:"ecdsa" description:"treat public-key as an ECDSA key instead of Schnorr"`
	commonFlags
}

type sendConfig struct {
	PrivateKey string `long:"private-key" short:"k" description:"private key of the sender, encoded in hex" required:"true"`
	ToAddress  string `long:"to-address" short:"t" description:"recipient address" required:"true"`
	Amount     uint64 `long:"amount" short:"v" description:"amount to send, in sompi" required:"true"`
	Fee        uint64 `long:"fee" description:"explicit fee in sompi; 0 estimates from the fee rate"`
	ECDSA      bool   `long:"ecdsa" description:"treat private-key as an ECDSA key instead of Schnorr"`
	commonFlags
}

type krc20DeployConfig struct {
	PrivateKey string `long:"private-key" short:"k" description:"ECDSA private key funding and signing the commit/reveal pair, encoded in hex" required:"true"`
	Tick       string `long:"tick" description:"4-6 character ticker" required:"true"`
	Max        string `long:"max" description:"maximum supply, as a base-unit decimal string" required:"true"`
	Lim        string `long:"lim" description:"per-mint limit, as a base-unit decimal string" required:"true"`
	Dec        string `long:"dec" description:"decimal places (default 8)"`
	commonFlags
}

type krc20MintConfig struct {
	PrivateKey string `long:"private-key" short:"k" description:"ECDSA private key funding and signing the commit/reveal pair, encoded in hex" required:"true"`
	Tick       string `long:"tick" description:"ticker to mint" required:"true"`
	commonFlags
}

type krc20TransferConfig struct {
	PrivateKey string `long:"private-key" short:"k" description:"ECDSA private key funding and signing the commit/reveal pair, encoded in hex" required:"true"`
	Tick       string `long:"tick" description:"ticker to transfer" required:"true"`
	To         string `long:"to" description:"recipient address" required:"true"`
	Amount     string `long:"amount" description:"amount to transfer, as a base-unit decimal string" required:"true"`
	commonFlags
}

// krc20RevealConfig covers the second half of any KRC20 operation: once
// the commit transaction from krc20-deploy/mint/transfer has confirmed,
// this builds and signs the reveal that actually spends it.
type krc20RevealConfig struct {
	PrivateKey   string `long:"private-key" short:"k" description:"ECDSA private key that signs the reveal" required:"true"`
	PublicKey    string `long:"public-key" short:"p" description:"public key matching private-key, encoded in hex" required:"true"`
	CommitTxID   string `long:"commit-txid" description:"transaction ID of the confirmed commit" required:"true"`
	CommitIndex  uint32 `long:"commit-index" description:"output index of the P2SH commit output" default:"0"`
	CommitAmount uint64 `long:"commit-amount" description:"value of the P2SH commit output, in sompi" required:"true"`
	RedeemScript string `long:"redeem-script" description:"redeem script saved from the matching commit, encoded in hex" required:"true"`
	Op           string `long:"op" description:"operation name, for the reveal fee lookup (deploy, mint, transfer, burn, list, send)" required:"true"`
	ToAddress    string `long:"to-address" description:"where the reveal's remainder is paid" required:"true"`
	commonFlags
}

func parseCommandLine() (subCommand string, cfg interface{}) {
	parser := flags.NewParser(&struct{}{}, flags.PrintErrors|flags.HelpFlag)

	addressConf := &addressConfig{}
	parser.AddCommand(addressSubCmd, "Derives a Kaspa address from a public key",
		"Derives and prints the CashAddr-style address for a public key", addressConf)

	sendConf := &sendConfig{}
	parser.AddCommand(sendSubCmd, "Builds, signs, and broadcasts a plain send",
		"Fetches UTXOs, builds an unsigned transaction, signs it locally, and broadcasts it", sendConf)

	deployConf := &krc20DeployConfig{}
	parser.AddCommand(krc20DeploySubCmd, "Builds and broadcasts a KRC20 deploy commit",
		"Formats a deploy operation, builds the commit transaction, signs it, and broadcasts it", deployConf)

	mintConf := &krc20MintConfig{}
	parser.AddCommand(krc20MintSubCmd, "Builds and broadcasts a KRC20 mint commit",
		"Formats a mint operation, builds the commit transaction, signs it, and broadcasts it", mintConf)

	transferConf := &krc20TransferConfig{}
	parser.AddCommand(krc20TransferSubCmd, "Builds and broadcasts a KRC20 transfer commit",
		"Formats a transfer operation, builds the commit transaction, signs it, and broadcasts it", transferConf)

	revealConf := &krc20RevealConfig{}
	parser.AddCommand(krc20RevealSubCmd, "Builds, signs, and broadcasts a KRC20 reveal",
		"Spends a confirmed commit output to complete a KRC20 operation", revealConf)

	_, err := parser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
		return "", nil
	}

	if parser.Command.Active == nil {
		printErrorAndExit(errors.New("no sub-command specified"))
	}

	switch parser.Command.Active.Name {
	case addressSubCmd:
		cfg = addressConf
	case sendSubCmd:
		cfg = sendConf
	case krc20DeploySubCmd:
		cfg = deployConf
	case krc20MintSubCmd:
		cfg = mintConf
	case krc20TransferSubCmd:
		cfg = transferConf
	case krc20RevealSubCmd:
		cfg = revealConf
	default:
		printErrorAndExit(errors.Errorf("unknown sub-command %q", parser.Command.Active.Name))
	}
	return parser.Command.Active.Name, cfg
}
