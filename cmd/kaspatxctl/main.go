package main

import "github.com/pkg/errors"

func main() {
	subCmd, cfg := parseCommandLine()

	var err error
	switch subCmd {
	case addressSubCmd:
		err = runAddress(cfg.(*addressConfig))
	case sendSubCmd:
		err = runSend(cfg.(*sendConfig))
	case krc20DeploySubCmd:
		err = runKRC20Deploy(cfg.(*krc20DeployConfig))
	case krc20MintSubCmd:
		err = runKRC20Mint(cfg.(*krc20MintConfig))
	case krc20TransferSubCmd:
		err = runKRC20Transfer(cfg.(*krc20TransferConfig))
	case krc20RevealSubCmd:
		err = runKRC20Reveal(cfg.(*krc20RevealConfig))
	default:
		err = errors.Errorf("unknown sub-command %q", subCmd)
	}

	if err != nil {
		printErrorAndExit(err)
	}
}
