package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jtheoden/papuenvios-sub001/internal/config"
	"github.com/jtheoden/papuenvios-sub001/internal/domain"
	"github.com/jtheoden/papuenvios-sub001/internal/repository/postgres"
)

func main() {
	statusFlag := flag.String("status", "", "Filter by order status")
	limitFlag := flag.Int("limit", 100, "Max orders to print")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)

	var status *domain.OrderStatus
	if *statusFlag != "" {
		s := domain.OrderStatus(*statusFlag)
		if !s.IsValid() {
			fmt.Fprintf(os.Stderr, "Invalid status: %s\n", *statusFlag)
			os.Exit(1)
		}
		status = &s
	}

	orders, err := repos.Order.List(context.Background(), status, *limitFlag, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list orders: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-14s %-12s %-10s %-24s %s\n", "NUMBER", "STATUS", "PAYMENT", "CUSTOMER", "TOTAL")
	for _, order := range orders {
		fmt.Printf("%-14s %-12s %-10s %-24s %s %s\n",
			order.OrderNumber,
			order.Status,
			order.PaymentStatus,
			order.CustomerName,
			order.TotalAmount.StringFixed(2),
			order.CurrencyCode,
		)
	}
	fmt.Printf("\n%d orders\n", len(orders))
}
