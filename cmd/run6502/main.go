// Command run6502 loads a flat binary image into a 64KiB address space and
// runs the 6502 family core against it until BRK or an illegal opcode. After
// BRK it prints the final register state and total cycle count; after an
// error it prints the cycle count and the error.
package main

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/urfave/cli.v2"

	"github.com/jmchacon/cpu6502core/cpu"
	"github.com/jmchacon/cpu6502core/memory"
)

func parseVariant(name string) (cpu.Variant, error) {
	switch name {
	case "6502", "nmos":
		return cpu.Variant6502, nil
	case "rockwell65c02", "rockwell":
		return cpu.VariantRockwell65C02, nil
	case "wdc65c02", "wdc":
		return cpu.VariantWDC65C02, nil
	default:
		return 0, fmt.Errorf("unknown variant %q", name)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		cli.ShowAppHelp(c)
		return cli.Exit("", 86)
	}
	rom, err := os.ReadFile(romPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("reading rom: %v", err), 1)
	}

	variant, err := parseVariant(c.String("variant"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	core, err := cpu.New(variant)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	bus := memory.NewFlat()
	bus.LoadAt(uint16(c.Uint("org")), rom)
	if resetPC := c.Uint("reset-pc"); c.IsSet("reset-pc") {
		bus.SetResetVector(uint16(resetPC))
	}
	core.Reset(bus)

	cycles, err := core.ExecuteUntilBreak(bus)
	if err != nil {
		fmt.Printf("stopped after %d cycles: %v\n", cycles, err)
		return cli.Exit("", 1)
	}

	fmt.Printf("halted after %d cycles\n", cycles)
	fmt.Printf("PC=0x%.4X S=0x%.2X A=0x%.2X X=0x%.2X Y=0x%.2X P=0x%.2X\n",
		core.PC, core.S, core.A, core.X, core.Y, core.P.Get())
	return nil
}

func main() {
	app := &cli.App{
		Name:    "run6502",
		Usage:   "run a flat binary against the 6502 family core",
		Version: "v0.0.1",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "rom",
				Usage: "path to a flat binary image",
			},
			&cli.UintFlag{
				Name:  "org",
				Usage: "address the rom is loaded at",
				Value: 0x0200,
			},
			&cli.StringFlag{
				Name:  "variant",
				Usage: "6502, rockwell65c02 or wdc65c02",
				Value: "6502",
			},
			&cli.UintFlag{
				Name:  "reset-pc",
				Usage: "override the reset vector to start execution here",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
