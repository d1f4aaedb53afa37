// cyclesim runs the traffic-light cycle headless against a synthetic
// triangle grid and prints each tick, for bench checks without
// hardware.
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/coreman2200/funtimes-trilight/internal/effect"
	"github.com/coreman2200/funtimes-trilight/internal/geometry"
	"github.com/coreman2200/funtimes-trilight/internal/palette"
)

func main() {
	var (
		columns  = flag.String("columns", "1,2,4,2,1", "panels per vertical column")
		ticks    = flag.Int("ticks", 12, "number of ticks to simulate")
		trans    = flag.Int("trans", effect.DefaultTransition, "base phase interval (ms)")
		realtime = flag.Bool("realtime", false, "sleep each tick's delay")
	)
	flag.Parse()

	counts, err := parseColumns(*columns)
	if err != nil {
		log.Fatalf("columns: %v", err)
	}

	lay := geometry.TriangleGrid(counts...)
	lay.Rotate()
	set := geometry.Slice(lay, 0)
	defer set.Release()

	slots := effect.SelectSlots(lay, set.Slices())
	for p, s := range slots {
		if s.Valid {
			fmt.Printf("[slot] %-6s -> panel %d\n", effect.Phase(p), s.PanelID)
		} else {
			fmt.Printf("[slot] %-6s -> (ignored)\n", effect.Phase(p))
		}
	}

	cycle := effect.New(set.Slices(), slots, palette.PhaseColors(nil), *trans)
	for i := 0; i < *ticks; i++ {
		phase := cycle.Phase()
		frame, delay := cycle.Tick()
		for _, f := range frame {
			if f.Color != palette.Black {
				fmt.Printf("[tick %03d] %-6s panel=%d rgb=(%d,%d,%d) delay=%s\n",
					i, phase, f.PanelID, f.Color.R, f.Color.G, f.Color.B, delay)
			}
		}
		if *realtime {
			time.Sleep(delay)
		}
	}
}

func parseColumns(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	counts := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("negative column size %d", n)
		}
		counts = append(counts, n)
	}
	return counts, nil
}
