package analysis

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/langevin/internal/md"
	"github.com/san-kum/langevin/internal/units"
)

// PlotTemperature saves a PNG of the temperature series against simulated
// time (in ps), with the target temperature as a horizontal reference and a
// running average overlay when the series is long enough.
func PlotTemperature(samples []md.ThermoSample, target float64, filename string) error {
	p := plot.New()
	p.Title.Text = "Temperature Evolution"
	p.X.Label.Text = "Time (ps)"
	p.Y.Label.Text = "Temperature (K)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		pts[i].X = s.Time / units.Picosecond
		pts[i].Y = s.Temperature
	}
	inst, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	inst.Color = color.RGBA{B: 255, A: 255}
	p.Add(inst)
	p.Legend.Add("instantaneous", inst)

	targetLine := plotter.NewFunction(func(x float64) float64 { return target })
	targetLine.Color = color.RGBA{R: 255, A: 255}
	targetLine.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(targetLine)
	p.Legend.Add("target", targetLine)

	window := len(samples) / 10
	if window > 100 {
		window = 100
	}
	if window > 1 {
		avg := RunningAverage(Temperatures(samples), window)
		avgPts := make(plotter.XYs, len(avg))
		for i := range avg {
			avgPts[i].X = samples[i+window-1].Time / units.Picosecond
			avgPts[i].Y = avg[i]
		}
		line, err := plotter.NewLine(avgPts)
		if err != nil {
			return err
		}
		line.Color = color.RGBA{G: 180, A: 255}
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add("running average", line)
	}

	return p.Save(10*vg.Inch, 6*vg.Inch, filename)
}

// PlotEnergy saves a PNG of the kinetic energy series (in aJ) against
// simulated time (in ps).
func PlotEnergy(samples []md.ThermoSample, filename string) error {
	p := plot.New()
	p.Title.Text = "Kinetic Energy Evolution"
	p.X.Label.Text = "Time (ps)"
	p.Y.Label.Text = "Kinetic Energy (aJ)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		pts[i].X = s.Time / units.Picosecond
		pts[i].Y = s.KineticEnergy * 1e18
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{B: 255, A: 255}
	p.Add(line)

	return p.Save(10*vg.Inch, 6*vg.Inch, filename)
}
