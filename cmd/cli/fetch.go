package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// fetch warms the local cache so later runs work offline
func newFetchCmd(rc *rootConfig) *cobra.Command {
	var window windowFlags

	c := &cobra.Command{
		Use:   "fetch",
		Short: "Download sentiment and price history into the local cache",
		RunE: func(c *cobra.Command, args []string) error {
			commandLogger(c)
			start, end, err := window.parse(time.Now())
			if err != nil {
				return err
			}
			deps, err := rc.dependencies()
			if err != nil {
				return err
			}

			sentiment := deps.SentimentService.GetSentiment(c.Context())
			price := deps.PriceService.GetPrices(c.Context(), start, end)

			fmt.Printf("sentiment: %d rows from %q covering %s\n", len(sentiment.Points), sentiment.Source, sentiment.Coverage())
			fmt.Printf("price:     %d rows from %q covering %s\n", len(price.Points), price.Source, price.Coverage())
			if sentiment.Empty() || price.Empty() {
				return fmt.Errorf("at least one series is empty, see the log for backend errors")
			}
			return nil
		},
	}
	window.register(c)
	return c
}
