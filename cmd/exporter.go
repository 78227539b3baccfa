package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"reolink-cli/internal/client"
	"reolink-cli/internal/exporter"
	"reolink-cli/internal/publish"
)

var (
	expHost       string
	expUser       string
	expPass       string
	expInsecure   bool
	expPort       string
	expMQTTBroker string
	expMQTTUser   string
	expMQTTPass   string
	expMQTTPrefix string
	serviceAction string
)

// program implements the kardianos/service interface
type program struct {
	api       *client.ReolinkClient
	server    *http.Server
	publisher *publish.Publisher
}

func (p *program) Start(s service.Service) error {
	// Start must not block.
	go p.run()
	return nil
}

func (p *program) run() {
	logrus.Info("attempting initial login")
	if _, err := p.api.Login(); err != nil {
		// The collector logs in again on the next scrape.
		logrus.WithError(err).Error("initial login failed")
	} else {
		logrus.Info("initial login successful")
	}

	collector := exporter.ForClient(p.api)
	if expMQTTBroker != "" {
		p.publisher = publish.Connect(publish.Config{
			Broker:   expMQTTBroker,
			Username: expMQTTUser,
			Password: expMQTTPass,
			Prefix:   expMQTTPrefix,
		})
		collector.OnScrape = func(s exporter.Snapshot) {
			if err := p.publisher.Publish(s.Info.Serial, "performance", s.Performance); err != nil {
				logrus.WithError(err).Warn("mqtt publish failed")
			}
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collector)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: logrus.StandardLogger(),
	}))

	addr := fmt.Sprintf(":%s", expPort)
	p.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logrus.WithField("addr", addr).Info("reolink exporter listening")
	if err := p.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Error("http server error")
	}
}

func (p *program) Stop(s service.Service) error {
	logrus.Info("stopping service")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			logrus.WithError(err).Warn("server forced to shutdown")
		}
	}
	if p.publisher != nil {
		p.publisher.Close()
	}
	return nil
}

func serviceArguments() []string {
	args := []string{
		"exporter",
		"--host", expHost,
		"--username", expUser,
		"--password", expPass,
		"--port", expPort,
		"--log-level", logLevel,
	}
	if expInsecure {
		args = append(args, "--insecure")
	}
	if logFile != "" {
		args = append(args, "--log-file", logFile)
	}
	if expMQTTBroker != "" {
		args = append(args,
			"--mqtt-broker", expMQTTBroker,
			"--mqtt-username", expMQTTUser,
			"--mqtt-password", expMQTTPass,
			"--mqtt-prefix", expMQTTPrefix,
		)
	}
	return args
}

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start Prometheus exporter service",
	Long: `Starts a long-running HTTP server that exposes camera performance
metrics on /metrics. Optionally publishes each scrape to an MQTT broker.
Can be installed as a system service.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if expHost == "" || expPass == "" {
			return errors.New("--host and --password are required")
		}

		svcConfig := &service.Config{
			Name:        "reolink-exporter",
			DisplayName: "Reolink Prometheus Exporter",
			Description: "Exposes Reolink camera metrics to Prometheus",
			Arguments:   serviceArguments(),
		}

		prg := &program{
			api: client.New(client.ClientConfig{
				BaseURL:  expHost,
				Username: expUser,
				Password: expPass,
				Insecure: expInsecure,
			}),
		}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			return err
		}

		if serviceAction != "" {
			if err := service.Control(s, serviceAction); err != nil {
				return fmt.Errorf("failed to %s service: %w", serviceAction, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Service action '%s' completed successfully.\n", serviceAction)
			return nil
		}

		// Blocks until the service manager or a signal stops us.
		return s.Run()
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)
	exporterCmd.Flags().StringVar(&expHost, "host", "", "Camera base URL")
	exporterCmd.Flags().StringVar(&expUser, "username", "admin", "Camera username")
	exporterCmd.Flags().StringVar(&expPass, "password", "", "Camera password")
	exporterCmd.Flags().BoolVar(&expInsecure, "insecure", false, "Skip TLS certificate verification")
	exporterCmd.Flags().StringVar(&expPort, "port", "9101", "Port to listen on")
	exporterCmd.Flags().StringVar(&expMQTTBroker, "mqtt-broker", "", "MQTT broker URI, e.g. tcp://localhost:1883")
	exporterCmd.Flags().StringVar(&expMQTTUser, "mqtt-username", "", "MQTT username")
	exporterCmd.Flags().StringVar(&expMQTTPass, "mqtt-password", "", "MQTT password")
	exporterCmd.Flags().StringVar(&expMQTTPrefix, "mqtt-prefix", publish.DefaultPrefix, "MQTT topic prefix")

	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
