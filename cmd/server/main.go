/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wso2/crm-customer-data-sync/internal/system/config"
	"github.com/wso2/crm-customer-data-sync/internal/system/constants"
	systemContext "github.com/wso2/crm-customer-data-sync/internal/system/context"
	"github.com/wso2/crm-customer-data-sync/internal/system/database/provider"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
	"github.com/wso2/crm-customer-data-sync/internal/system/managers"
	"github.com/wso2/crm-customer-data-sync/internal/system/resources"
	"github.com/wso2/crm-customer-data-sync/internal/system/workers"
)

const (
	configFile   = "/repository/conf/deployment.yaml"
	schemaFile   = "/dbscripts/postgres.sql"
	shutdownWait = 30 * time.Second
)

func main() {
	syncHome := getSyncHome()

	envFiles, err := filepath.Glob(filepath.Join(syncHome, "config/*.env"))
	if err == nil && len(envFiles) > 0 {
		_ = godotenv.Load(envFiles...)
	}

	// Load the configuration file
	syncConfig, err := config.LoadConfig(syncHome, configFile)
	if err != nil {
		log.GetLogger().Fatal("Failed to load configuration", log.Error(err))
	}

	if err := log.InitWithFormat(syncConfig.Log.LogLevel, syncConfig.Log.Format); err != nil {
		log.GetLogger().Fatal("Failed to initialize logger", log.Error(err))
	}
	logger := log.GetLogger()

	if err := config.ValidateConnectorSettings(syncConfig.Connector); err != nil {
		logger.Fatal("Invalid connector settings", log.Error(err))
	}

	// Initialize runtime configurations.
	if err := config.InitializeSyncRuntime(syncHome, syncConfig); err != nil {
		logger.Fatal("Failed to initialize sync runtime", log.Error(err))
	}

	if syncConfig.SyncHistory.Backend == constants.HistoryBackendPostgres {
		initDatabase(syncHome)
	}

	if err := resources.Initialize(*syncConfig); err != nil {
		logger.Fatal("Failed to initialize shared resources", log.Error(err))
	}

	workers.StartSyncWorker(syncConfig.Sync.QueueSize)

	serverAddr := fmt.Sprintf("%s:%d", syncConfig.Addr.Host, syncConfig.Addr.Port)
	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener", log.String("address", serverAddr), log.Error(err))
	}

	server := &http.Server{
		Handler:           systemContext.TraceMiddleware(enableCORS(initMultiplexer())),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("CRM customer data sync started", log.String("address", serverAddr),
			log.String("tenant", syncConfig.Tenant))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to serve requests", log.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", log.Error(err))
	}
	workers.StopSyncWorker()
	if err := resources.Close(); err != nil {
		logger.Warn("Failed to release shared resources", log.Error(err))
	}
	logger.Info("CRM customer data sync stopped")
}

func initDatabase(syncHome string) {

	logger := log.GetLogger()
	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		logger.Fatal("Failed to connect to the sync history database", log.Error(err))
	}
	defer dbClient.Close()

	if err := dbClient.InitDatabase(syncHome, schemaFile); err != nil {
		logger.Fatal("Failed to create the sync history schema", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	// Register the services.
	if err := serviceManager.RegisterServices(); err != nil {
		log.GetLogger().Error("Failed to register the services", log.Error(err))
	}

	return mux
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length, "+constants.TraceIDHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getSyncHome() string {

	// Parse project directory from command line arguments.
	syncHomeFlag := flag.String("syncHome", "", "Path to the customer data sync home directory")
	flag.Parse()

	if *syncHomeFlag != "" {
		log.GetLogger().Info(fmt.Sprintf("Using %s from command line argument", *syncHomeFlag))
		return *syncHomeFlag
	}

	// If no command line argument is provided, use the current working directory.
	dir, err := os.Getwd()
	if err != nil {
		log.GetLogger().Fatal("Failed to get current working directory", log.Error(err))
	}
	return dir
}
