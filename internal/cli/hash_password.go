package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/gatekeeper/internal/auth"
	"github.com/mrlokans/gatekeeper/internal/config"
)

// HashPasswordCommand prints a bcrypt hash, for seeding users by hand.
type HashPasswordCommand struct {
	Password   string
	BcryptCost int
	Out        io.Writer
}

func NewHashPasswordCommand() *HashPasswordCommand {
	return &HashPasswordCommand{Out: os.Stdout}
}

func (cmd *HashPasswordCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)

	fs.StringVar(&cmd.Password, "password", "", "Password to hash (required)")
	fs.IntVar(&cmd.BcryptCost, "cost", config.DefaultBcryptCost, "bcrypt cost factor")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Password == "" {
		fs.Usage()
		return fmt.Errorf("password is required")
	}

	return nil
}

func (cmd *HashPasswordCommand) Run() error {
	hash, err := auth.NewHasher(cmd.BcryptCost, 1).Hash(context.Background(), cmd.Password)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.Out, hash)
	return nil
}
