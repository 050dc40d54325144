package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"lukechampine.com/uint128"

	"github.com/Solana-ZH/clmmcore/pkg/clmm/pda"
	"github.com/Solana-ZH/clmmcore/pkg/clmm/tickmath"
	"github.com/Solana-ZH/clmmcore/utils"
)

func main() {
	utils.LoadEnv()

	root := &cobra.Command{
		Use:          "clmmcore",
		Short:        "Offline utilities for the CLMM pool bootstrap core",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("program", pda.ClmmProgramID.String(), "pool program id")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	deriveCmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive the pool and sub-object addresses for a (config, mint0, mint1) tuple",
		RunE:  runDerive,
	}
	deriveCmd.Flags().String("amm-config", "", "amm config address")
	deriveCmd.Flags().String("mint0", "", "token mint 0 (must sort below mint1)")
	deriveCmd.Flags().String("mint1", "", "token mint 1")
	root.AddCommand(deriveCmd)

	tickCmd := &cobra.Command{
		Use:   "tick",
		Short: "Convert a tick index to its Q64.64 sqrt price",
		RunE:  runTick,
	}
	tickCmd.Flags().Int32("tick", 0, "tick index")
	tickCmd.Flags().Uint8("decimals0", 0, "mint 0 decimals for price display")
	tickCmd.Flags().Uint8("decimals1", 0, "mint 1 decimals for price display")
	root.AddCommand(tickCmd)

	priceCmd := &cobra.Command{
		Use:   "price",
		Short: "Convert a Q64.64 sqrt price to the tick it floors to",
		RunE:  runPrice,
	}
	priceCmd.Flags().String("sqrt-price-x64", "", "sqrt price, Q64.64")
	root.AddCommand(priceCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func settings(cmd *cobra.Command) (*viper.Viper, *zap.Logger, error) {
	v := viper.New()
	v.SetEnvPrefix("CLMMCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, flags := range []*pflag.FlagSet{cmd.Flags(), cmd.InheritedFlags()} {
		if err := v.BindPFlags(flags); err != nil {
			return nil, nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	level, err := zapcore.ParseLevel(v.GetString("log-level"))
	if err != nil {
		level = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	log, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return v, log, nil
}

func runDerive(cmd *cobra.Command, _ []string) error {
	v, log, err := settings(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	programID, err := solana.PublicKeyFromBase58(v.GetString("program"))
	if err != nil {
		return fmt.Errorf("invalid program id: %w", err)
	}
	ammConfig, err := solana.PublicKeyFromBase58(v.GetString("amm-config"))
	if err != nil {
		return fmt.Errorf("invalid amm config: %w", err)
	}
	mint0, err := solana.PublicKeyFromBase58(v.GetString("mint0"))
	if err != nil {
		return fmt.Errorf("invalid mint0: %w", err)
	}
	mint1, err := solana.PublicKeyFromBase58(v.GetString("mint1"))
	if err != nil {
		return fmt.Errorf("invalid mint1: %w", err)
	}

	pool, bump, err := pda.PoolAddress(programID, ammConfig, mint0, mint1)
	if err != nil {
		return err
	}
	vault0, _, err := pda.VaultAddress(programID, pool, mint0)
	if err != nil {
		return err
	}
	vault1, _, err := pda.VaultAddress(programID, pool, mint1)
	if err != nil {
		return err
	}
	observation, _, err := pda.ObservationAddress(programID, pool)
	if err != nil {
		return err
	}
	bitmap, _, err := pda.TickArrayBitmapAddress(programID, pool)
	if err != nil {
		return err
	}

	log.Debug("derived pool addresses", zap.Stringer("pool", pool), zap.Uint8("bump", bump))

	fmt.Printf("pool:         %s (bump %d)\n", pool, bump)
	fmt.Printf("vault0:       %s\n", vault0)
	fmt.Printf("vault1:       %s\n", vault1)
	fmt.Printf("observation:  %s\n", observation)
	fmt.Printf("tick bitmap:  %s\n", bitmap)
	return nil
}

func runTick(cmd *cobra.Command, _ []string) error {
	v, log, err := settings(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	tick := v.GetInt32("tick")
	sqrtPrice, err := tickmath.SqrtPriceAtTick(tick)
	if err != nil {
		return err
	}

	fmt.Printf("tick:          %d\n", tick)
	fmt.Printf("sqrt price:    %s\n", sqrtPrice)
	d0 := uint8(v.GetUint("decimals0"))
	d1 := uint8(v.GetUint("decimals1"))
	fmt.Printf("price:         %s\n", tickmath.Price(sqrtPrice, d0, d1))
	return nil
}

func runPrice(cmd *cobra.Command, _ []string) error {
	v, log, err := settings(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	raw := v.GetString("sqrt-price-x64")
	sqrtPrice, err := uint128.FromString(raw)
	if err != nil {
		return fmt.Errorf("invalid sqrt price %q: %w", raw, err)
	}
	tick, err := tickmath.TickAtSqrtPrice(sqrtPrice)
	if err != nil {
		return err
	}
	floor, err := tickmath.SqrtPriceAtTick(tick)
	if err != nil {
		return err
	}

	fmt.Printf("sqrt price:    %s\n", sqrtPrice)
	fmt.Printf("tick (floor):  %d\n", tick)
	fmt.Printf("grid price:    %s\n", floor)
	return nil
}
