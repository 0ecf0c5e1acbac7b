package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spec-kit/planets-api/pkg/client"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx     context.Context
	Session *client.SessionManager
	API     *client.Client
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmdName)
		printUsage()
		os.Exit(2)
	}

	api := client.New(baseURL(), client.WithTokenStore(client.NewFileTokenStore(tokenPath())))
	session := client.NewSessionManager(api, client.NotifierFunc(func(message string) {
		fmt.Fprintln(os.Stderr, message)
	}))

	cmdCtx := &commandContext{
		Ctx:     context.Background(),
		Session: session,
		API:     api,
	}

	if err := cmd.run(cmdCtx, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func commands() map[string]command {
	cmds := []command{
		{"login", "authenticate and store a token", cmdLogin},
		{"logout", "clear the stored token", cmdLogout},
		{"me", "show the current identity", cmdMe},
		{"list", "list all planets", cmdList},
		{"get", "show one planet by id", cmdGet},
		{"create", "create a planet", cmdCreate},
		{"update", "update planet fields", cmdUpdate},
		{"delete", "delete a planet by id", cmdDelete},
		{"health", "check API health", cmdHealth},
	}
	out := make(map[string]command, len(cmds))
	for _, c := range cmds {
		out[c.name] = c
	}
	return out
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: planetsctl <command> [flags]")
	fmt.Fprintln(os.Stderr)

	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stderr, 0, 4, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%s\n", name, cmds[name].description)
	}
	_ = w.Flush()
}

func baseURL() string {
	if url := os.Getenv("PLANETS_API_URL"); url != "" {
		return url
	}
	return "http://127.0.0.1:8080"
}

func tokenPath() string {
	if path := os.Getenv("PLANETSCTL_TOKEN_FILE"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".planetsctl-token"
	}
	return filepath.Join(home, ".planetsctl", "token")
}

func cmdLogin(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return fmt.Errorf("login requires -username and -password")
	}

	if err := ctx.Session.Login(ctx.Ctx, *username, *password); err != nil {
		return err
	}
	snap := ctx.Session.Snapshot()
	fmt.Printf("logged in as %s (role %s)\n", snap.Identity.Username, snap.Identity.Role)
	return nil
}

func cmdLogout(ctx *commandContext, _ []string) error {
	ctx.Session.Logout()
	return nil
}

func cmdMe(ctx *commandContext, _ []string) error {
	if err := ctx.Session.Initialize(ctx.Ctx); err != nil {
		return err
	}
	snap := ctx.Session.Snapshot()
	if !snap.IsAuthenticated {
		return fmt.Errorf("not logged in")
	}
	identity := snap.Identity
	fmt.Printf("id:       %d\n", identity.ID)
	fmt.Printf("username: %s\n", identity.Username)
	fmt.Printf("email:    %s\n", identity.Email)
	fmt.Printf("role:     %s\n", identity.Role)
	return nil
}

func cmdList(ctx *commandContext, _ []string) error {
	planets, err := ctx.API.ListPlanets(ctx.Ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tDISTANCE\tRADIUS")
	for _, p := range planets {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.1f\t%.1f\n",
			p.ID, p.Name, p.PlanetType, p.DistanceFromSun, p.Radius)
	}
	return w.Flush()
}

func cmdGet(ctx *commandContext, args []string) error {
	id, err := idArg(args)
	if err != nil {
		return err
	}
	planet, err := ctx.API.GetPlanet(ctx.Ctx, id)
	if err != nil {
		return err
	}
	printPlanet(planet)
	return nil
}

func cmdCreate(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	name := fs.String("name", "", "planet name")
	planetType := fs.String("type", "", "planet type")
	distance := fs.Float64("distance", 0, "distance from sun")
	radius := fs.Float64("radius", 0, "radius")
	mass := fs.Float64("mass", 0, "mass (optional)")
	orbitalPeriod := fs.Float64("orbital-period", 0, "orbital period (optional)")
	description := fs.String("description", "", "description (optional)")
	color := fs.String("color", "", "color (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	input := client.PlanetInput{
		Name:            *name,
		PlanetType:      *planetType,
		DistanceFromSun: *distance,
		Radius:          *radius,
		Mass:            optionalFloat(*mass),
		OrbitalPeriod:   optionalFloat(*orbitalPeriod),
		Description:     optionalString(*description),
		Color:           optionalString(*color),
	}
	planet, err := ctx.API.CreatePlanet(ctx.Ctx, input)
	if err != nil {
		return err
	}
	printPlanet(planet)
	return nil
}

func cmdUpdate(ctx *commandContext, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("update requires a planet id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid planet id %q", args[0])
	}

	fs := flag.NewFlagSet("update", flag.ExitOnError)
	name := fs.String("name", "", "planet name")
	planetType := fs.String("type", "", "planet type")
	distance := fs.Float64("distance", 0, "distance from sun")
	radius := fs.Float64("radius", 0, "radius")
	mass := fs.Float64("mass", 0, "mass")
	description := fs.String("description", "", "description")
	color := fs.String("color", "", "color")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	patch := client.PlanetPatch{
		Name:            optionalString(*name),
		PlanetType:      optionalString(*planetType),
		DistanceFromSun: optionalFloat(*distance),
		Radius:          optionalFloat(*radius),
		Mass:            optionalFloat(*mass),
		Description:     optionalString(*description),
		Color:           optionalString(*color),
	}
	planet, err := ctx.API.UpdatePlanet(ctx.Ctx, id, patch)
	if err != nil {
		return err
	}
	printPlanet(planet)
	return nil
}

func cmdDelete(ctx *commandContext, args []string) error {
	id, err := idArg(args)
	if err != nil {
		return err
	}
	if err := ctx.API.DeletePlanet(ctx.Ctx, id); err != nil {
		return err
	}
	fmt.Printf("deleted planet %d\n", id)
	return nil
}

func cmdHealth(ctx *commandContext, _ []string) error {
	status, err := ctx.API.Health(ctx.Ctx)
	if err != nil {
		return err
	}
	fmt.Printf("status: %s (%s)\n", status.Status, status.Version)
	return nil
}

func idArg(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("a planet id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid planet id %q", args[0])
	}
	return id, nil
}

func printPlanet(p *client.Planet) {
	fmt.Printf("id:       %d\n", p.ID)
	fmt.Printf("name:     %s\n", p.Name)
	fmt.Printf("type:     %s\n", p.PlanetType)
	fmt.Printf("distance: %.1f\n", p.DistanceFromSun)
	fmt.Printf("radius:   %.1f\n", p.Radius)
	if p.Mass != nil {
		fmt.Printf("mass:     %.3f\n", *p.Mass)
	}
	if p.OrbitalPeriod != nil {
		fmt.Printf("orbit:    %.1f\n", *p.OrbitalPeriod)
	}
	if p.Description != nil {
		fmt.Printf("about:    %s\n", *p.Description)
	}
}

func optionalFloat(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
