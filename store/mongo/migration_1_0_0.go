// Copyright 2024 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package mongo

import (
	"context"

	"github.com/mendersoftware/go-lib-micro/mongo/migrate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"
)

type migration_1_0_0 struct {
	client *mongo.Client
	db     string
}

// Up creates the indexes backing device listings, token lookups, config
// versioning and the per-device command queue
func (m *migration_1_0_0) Up(from migrate.Version) error {
	ctx := context.Background()
	database := m.client.Database(m.db)

	collections := map[string][]mongo.IndexModel{
		DevicesCollectionName: {
			{
				Keys:    bson.D{{Key: "platform", Value: 1}},
				Options: mopts.Index().SetName("platform"),
			},
			{
				Keys:    bson.D{{Key: "threat_level", Value: 1}},
				Options: mopts.Index().SetName("threat_level"),
			},
			{
				Keys:    bson.D{{Key: "is_online", Value: 1}},
				Options: mopts.Index().SetName("is_online"),
			},
		},
		TokensCollectionName: {
			{
				Keys: bson.D{
					{Key: "device_id", Value: 1},
					{Key: "type", Value: 1},
				},
				Options: mopts.Index().SetName("device_id_type"),
			},
			{
				Keys: bson.D{{Key: "expires_at", Value: 1}},
				Options: mopts.Index().
					SetName("expires_at").
					SetExpireAfterSeconds(0),
			},
		},
		ConfigsCollectionName: {
			{
				Keys: bson.D{
					{Key: "device_id", Value: 1},
					{Key: "version", Value: -1},
				},
				Options: mopts.Index().
					SetName("device_id_version").
					SetUnique(true),
			},
		},
		CommandsCollectionName: {
			{
				Keys: bson.D{
					{Key: "device_id", Value: 1},
					{Key: "status", Value: 1},
					{Key: "created_ts", Value: 1},
				},
				Options: mopts.Index().SetName("device_id_status_created_ts"),
			},
		},
		SyncLogsCollectionName: {
			{
				Keys: bson.D{
					{Key: "device_id", Value: 1},
					{Key: "created_ts", Value: -1},
				},
				Options: mopts.Index().SetName("device_id_created_ts"),
			},
		},
		StatusReportsCollectionName: {
			{
				Keys: bson.D{
					{Key: "device_id", Value: 1},
					{Key: "created_ts", Value: -1},
				},
				Options: mopts.Index().SetName("device_id_created_ts"),
			},
		},
	}

	for collection, indexes := range collections {
		idx := database.Collection(collection).Indexes()
		if _, err := idx.CreateMany(ctx, indexes); err != nil {
			return err
		}
	}

	return nil
}

func (m *migration_1_0_0) Version() migrate.Version {
	return migrate.MakeVersion(1, 0, 0)
}
