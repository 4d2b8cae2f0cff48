package console

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/aimlfun/1969lander/internal/lander"
)

// Session is the turn-based manual descent: one burn rate typed per
// ten-second turn, invalid entries rejected and re-prompted with no effect
// on flight state.
type Session struct {
	in  *bufio.Scanner
	out io.Writer
	sim *lander.Simulator
}

func NewSession(in io.Reader, out io.Writer, sim *lander.Simulator) *Session {
	return &Session{
		in:  bufio.NewScanner(in),
		out: out,
		sim: sim,
	}
}

// Play flies one full descent under manual control and prints the verdict.
func (s *Session) Play() (lander.Outcome, error) {
	fmt.Fprintln(s.out, "CONTROL CALLING LUNAR MODULE. MANUAL CONTROL IS NECESSARY.")
	fmt.Fprintln(s.out, "YOU MAY RESET FUEL RATE K EACH 10 SECS TO 0 OR ANY VALUE BETWEEN 8 & 200 LBS/SEC.")
	fmt.Fprintln(s.out, "CAPSULE WEIGHT 32,500 LBS; FUEL WEIGHT 16,000 LBS.")
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "SEC     MI + FT        MPH        LB FUEL")

	outcome, err := s.sim.Run(s)
	if err != nil {
		return lander.Outcome{}, err
	}

	fmt.Fprintf(s.out, "ON THE MOON AT %.2f SECS - IMPACT VELOCITY %.2f MPH, FUEL LEFT %s LBS\n",
		outcome.ElapsedSeconds,
		outcome.ImpactMPH,
		humanize.Commaf(math.Round(outcome.FuelRemainingLBs*100)/100),
	)
	fmt.Fprintln(s.out, outcome.Rating.Report())
	return outcome, nil
}

// NextBurnRate prints the status line for the turn and prompts until it
// reads a legal burn rate.
func (s *Session) NextBurnRate(st lander.State) (float64, error) {
	miles := math.Floor(st.AltitudeMiles)
	feet := (st.AltitudeMiles - miles) * 5280
	fmt.Fprintf(s.out, "%7.0f %4.0f + %4.0f %10.2f %14s\n",
		st.ElapsedSeconds,
		miles,
		math.Floor(feet),
		st.SpeedMPS*lander.MPHPerMPS,
		humanize.Commaf(math.Round(st.FuelRemainingLBs()*10)/10),
	)

	for {
		fmt.Fprint(s.out, "K=? ")
		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return 0, err
			}
			return 0, fmt.Errorf("control input closed")
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(s.in.Text()), 64)
		if err != nil {
			fmt.Fprintln(s.out, "NOT POSSIBLE. ENTER A NUMBER: 0 OR 8 THROUGH 200.")
			continue
		}
		if err := lander.ValidateManualBurnRate(rate); err != nil {
			fmt.Fprintln(s.out, "NOT POSSIBLE. ENTER 0 OR A RATE FROM 8 TO 200 LBS/SEC.")
			continue
		}
		return rate, nil
	}
}
