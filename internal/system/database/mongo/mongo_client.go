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

package mongo

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wso2/crm-customer-data-sync/internal/system/config"
	"github.com/wso2/crm-customer-data-sync/internal/system/log"
)

// MongoDB holds the client and the database of the run history.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var (
	mongoInstance *MongoDB
	mongoLock     sync.Mutex
)

// Connect opens the process wide MongoDB connection. Later calls return the same instance.
func Connect(ctx context.Context, cfg config.MongoDBConfig) (*MongoDB, error) {

	mongoLock.Lock()
	defer mongoLock.Unlock()
	if mongoInstance != nil {
		return mongoInstance, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(err, "mongodb connection failed")
	}

	// Ping to ensure connection is live
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "mongodb ping failed")
	}
	log.GetLogger().Info("Connected to MongoDB", log.String("database", cfg.Database))

	mongoInstance = &MongoDB{
		Client:   client,
		Database: client.Database(cfg.Database),
	}
	return mongoInstance, nil
}

// Disconnect closes the process wide connection, if any.
func Disconnect(ctx context.Context) error {
	mongoLock.Lock()
	defer mongoLock.Unlock()
	if mongoInstance == nil {
		return nil
	}
	err := mongoInstance.Client.Disconnect(ctx)
	mongoInstance = nil
	return err
}
