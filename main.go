package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"mandelbrot/coordinator"
	"mandelbrot/frame"
	"mandelbrot/misc"
	"mandelbrot/render"
)

var (
	compare                   bool
	height, maxIterations     int
	width                     int
	settingsFile, strategyArg string
)

func main() {
	logger := bslogger.NewLogger("Mandelbrot", bslogger.Normal, nil)
	parseArguments()

	settings, err := coordinator.NewSettings(settingsFile)
	misc.CheckError(err, logger, misc.Fatal)
	misc.CheckError(applyArguments(&settings), logger, misc.Fatal)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := coordinator.NewCoordinator(settings)
	defer c.Close()

	if compare {
		compareStrategies(ctx, c, settings.Request(), logger)
		return
	}

	job, err := c.StartRender(settings.Request(), progressListener(logger))
	misc.CheckError(err, logger, misc.Fatal)
	state := waitOrCancel(ctx, job)
	logger.Infof("Render %s in %s", state, job.Elapsed().Round(time.Millisecond))
}

func parseArguments() {
	flag.BoolVar(&compare, "compare", false, "Render with every strategy and compare the frames")
	flag.IntVar(&height, "height", 0, "Height of the frame in pixels")
	flag.IntVar(&maxIterations, "maxIterations", 0, "Iterations to run to verify each point [10, 1000000]")
	flag.StringVar(&settingsFile, "settings", "", "Json file with coordinator settings")
	flag.StringVar(&strategyArg, "strategy", "", "Sequential, DataParallel, TaskParallel or StreamingPipeline")
	flag.IntVar(&width, "width", 0, "Width of the frame in pixels")
	flag.Parse()
}

// applyArguments lets command line flags override the settings file.
func applyArguments(settings *coordinator.Settings) error {
	if strategyArg != "" {
		kind, err := render.ParseKind(strategyArg)
		if err != nil {
			return err
		}
		settings.Strategy = kind
	}
	if width > 0 {
		settings.MandelbrotSettings.Width = width
	}
	if height > 0 {
		settings.MandelbrotSettings.Height = height
	}
	if maxIterations != 0 {
		settings.MandelbrotSettings.MaxIterations = maxIterations
	}
	return settings.Verify()
}

// progressListener logs every tenth of the frame.
func progressListener(logger bslogger.Logger) render.Listener {
	var lastStep int
	return render.ListenerFuncs{
		Progress: func(done int, total int) {
			step := done * 10 / total
			if step > lastStep {
				lastStep = step
				logger.Infof("Progress %s", misc.FormatPercent(done, total))
			}
		},
	}
}

// waitOrCancel waits for job, cancelling it when ctx is done first.
func waitOrCancel(ctx context.Context, job *coordinator.Job) coordinator.State {
	select {
	case <-job.Done():
	case <-ctx.Done():
		job.Cancel()
	}
	return job.Wait()
}

func compareStrategies(ctx context.Context, c *coordinator.Coordinator, request coordinator.Request, logger bslogger.Logger) {
	var reference *frame.Buffer
	for _, kind := range render.Kinds() {
		request.Strategy = kind
		job, err := c.StartRender(request, nil)
		if misc.CheckError(err, logger, misc.Error) {
			continue
		}
		if state := waitOrCancel(ctx, job); state != coordinator.Completed {
			logger.Warningf("%s %s, stopping the comparison", kind, state)
			return
		}

		matches := "reference"
		if reference == nil {
			reference = job.Frame()
		} else if reference.Equal(job.Frame()) {
			matches = "identical"
		} else {
			matches = "different"
			misc.CheckError(errors.New(kind.String()+" produced a different frame"), logger, misc.Error)
		}
		logger.Infof("%-17s %10s %s pixels [%s]", kind, job.Elapsed().Round(time.Millisecond),
			misc.FormatCount(request.Width*request.Height), matches)
	}
}
