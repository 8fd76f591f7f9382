// Command mazectl generates mazes locally and mints API tokens.
//
//	mazectl generate -dim 7 [-seed 42] [-attempts 25]
//	mazectl token -subject ops [-ttl 1h]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	logger "github.com/beka-birhanu/vinom-mazegen/infrastruture/log"
	"github.com/beka-birhanu/vinom-mazegen/infrastruture/token"
	"github.com/beka-birhanu/vinom-mazegen/service"
	"github.com/joho/godotenv"
)

const usage = "usage: mazectl <generate|token> [flags]"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	// .env is optional for the CLI.
	_ = godotenv.Load()

	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(os.Args[2:])
	case "token":
		err = runToken(os.Args[2:])
	default:
		err = fmt.Errorf("unknown command %q\n%s", os.Args[1], usage)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	dim := fs.Int("dim", 7, "maze dimension (tiles per side)")
	seed := fs.Int64("seed", 0, "random seed; 0 picks one")
	attempts := fs.Int("attempts", 25, "regeneration budget after unreachable walks")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cliLogger, err := logger.New("MAZECTL", logger.ColorYellow, os.Stderr)
	if err != nil {
		return err
	}

	generator, err := service.NewMazeGenerator(nil, cliLogger, &service.Options{MaxAttempts: *attempts})
	if err != nil {
		return err
	}

	var seedArg *int64
	if *seed != 0 {
		seedArg = seed
	}

	record, err := generator.Generate(context.Background(), *dim, seedArg)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}

func runToken(args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	subject := fs.String("subject", "", "token subject")
	ttl := fs.Duration("ttl", time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	secret, issuer := os.Getenv("JWT_SECRET"), os.Getenv("JWT_ISSUER")
	if secret == "" || issuer == "" {
		return fmt.Errorf("JWT_SECRET and JWT_ISSUER must be set")
	}

	tok, err := token.NewJwtService(secret, issuer).Generate(*subject, nil, *ttl)
	if err != nil {
		return err
	}

	fmt.Println(tok)
	return nil
}
