package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/codecustard/kaspa/address"
	"github.com/codecustard/kaspa/kasparest"
	"github.com/codecustard/kaspa/logger"
)

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func decodeHex(name, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "%s is not valid hex", name)
	}
	return b, nil
}

func selfAddress(publicKey []byte, ecdsa bool, prefix address.Prefix) (*address.Info, error) {
	addrType := address.TypeSchnorr
	if ecdsa {
		addrType = address.TypeECDSA
	}
	encoded, err := address.Encode(publicKey, addrType, prefix)
	if err != nil {
		return nil, err
	}
	return address.Decode(encoded)
}

// newClient builds a kasparest.Client targeting apiHost. If logDir is set,
// a rotated trace log is written under it; otherwise the client logs
// nowhere.
func newClient(apiHost, logDir string) (*kasparest.Client, error) {
	log, err := buildLogger(logDir)
	if err != nil {
		return nil, err
	}
	return kasparest.NewClient(apiHost, nil, log), nil
}

func buildLogger(logDir string) (*logger.Logger, error) {
	if logDir == "" {
		return nil, nil
	}
	backend := logger.NewBackend()
	if err := backend.AddLogFile(filepath.Join(logDir, "kaspatxctl.log"), logger.LevelTrace); err != nil {
		return nil, errors.Wrap(err, "setting up log file")
	}
	if err := backend.Run(); err != nil {
		return nil, errors.Wrap(err, "starting log backend")
	}
	log := backend.Logger("TXCTL")
	log.SetLevel(logger.LevelTrace)
	return log, nil
}
