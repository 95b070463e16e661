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
	"crypto/tls"
	"sort"
	"strings"
	"time"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	dconfig "github.com/mendersoftware/fleetsync/config"
	"github.com/mendersoftware/fleetsync/model"
	"github.com/mendersoftware/fleetsync/store"
)

const (
	// DevicesCollectionName refers to the collection of registered devices
	DevicesCollectionName = "devices"

	// TokensCollectionName refers to the collection of device tokens
	TokensCollectionName = "device_tokens"

	// ConfigsCollectionName refers to the collection of versioned device
	// configurations
	ConfigsCollectionName = "device_configs"

	// CommandsCollectionName refers to the collection of queued commands
	CommandsCollectionName = "commands"

	// SyncLogsCollectionName refers to the collection of sync log entries
	SyncLogsCollectionName = "sync_logs"

	// StatusReportsCollectionName refers to the collection of status reports
	StatusReportsCollectionName = "status_reports"
)

// SetupDataStore returns the mongo data store and optionally runs migrations
func SetupDataStore(automigrate bool) (*DataStoreMongo, error) {
	ctx := context.Background()
	dbClient, err := NewClient(ctx, config.Config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to db")
	}
	dbName := config.Config.GetString(dconfig.SettingDbName)
	if dbName == "" {
		dbName = DbName
	}
	err = Migrate(ctx, dbName, DbVersion, dbClient, automigrate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to run migrations")
	}
	dataStore := NewDataStoreWithClient(dbClient, config.Config)
	return dataStore, nil
}

func disconnectClient(parentCtx context.Context, client *mongo.Client) {
	ctx, cancel := context.WithTimeout(parentCtx, 1*time.Second)
	defer cancel()
	client.Disconnect(ctx)
}

// NewClient returns a mongo client
func NewClient(ctx context.Context, c config.Reader) (*mongo.Client, error) {

	clientOptions := mopts.Client()
	mongoURL := c.GetString(dconfig.SettingMongo)
	if !strings.Contains(mongoURL, "://") {
		return nil, errors.Errorf("Invalid mongoURL %q: missing schema.",
			mongoURL)
	}
	clientOptions.ApplyURI(mongoURL)

	username := c.GetString(dconfig.SettingDbUsername)
	if username != "" {
		credentials := mopts.Credential{
			Username: c.GetString(dconfig.SettingDbUsername),
		}
		password := c.GetString(dconfig.SettingDbPassword)
		if password != "" {
			credentials.Password = password
			credentials.PasswordSet = true
		}
		clientOptions.SetAuth(credentials)
	}

	if c.GetBool(dconfig.SettingDbSSL) {
		tlsConfig := &tls.Config{}
		tlsConfig.InsecureSkipVerify = c.GetBool(dconfig.SettingDbSSLSkipVerify)
		clientOptions.SetTLSConfig(tlsConfig)
	}

	// Acknowledge writes after they propagated to the mongod instance
	// and committed to the file system journal.
	wc := writeconcern.New(writeconcern.W(1), writeconcern.J(true))
	clientOptions.SetWriteConcern(wc)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to connect to mongo server")
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "Error reaching mongo server")
	}

	return client, nil
}

// DataStoreMongo is the data storage service
type DataStoreMongo struct {
	client *mongo.Client
	dbName string
}

// NewDataStoreWithClient initializes a DataStore object
func NewDataStoreWithClient(client *mongo.Client, c config.Reader) *DataStoreMongo {
	dbName := c.GetString(dconfig.SettingDbName)

	return &DataStoreMongo{
		client: client,
		dbName: dbName,
	}
}

func (db *DataStoreMongo) collection(name string) *mongo.Collection {
	return db.client.Database(db.dbName).Collection(name)
}

// Ping verifies the connection to the database
func (db *DataStoreMongo) Ping(ctx context.Context) error {
	res := db.client.Database(db.dbName).RunCommand(ctx, bson.M{"ping": 1})
	return res.Err()
}

// UpsertDevice inserts or updates a device record and returns the stored
// document
func (db *DataStoreMongo) UpsertDevice(
	ctx context.Context,
	device *model.Device,
) (*model.Device, error) {
	coll := db.collection(DevicesCollectionName)

	now := time.Now().UTC()
	findOneAndUpdateOpts := &mopts.FindOneAndUpdateOptions{}
	findOneAndUpdateOpts.SetUpsert(true)
	findOneAndUpdateOpts.SetReturnDocument(mopts.After)
	res := coll.FindOneAndUpdate(ctx,
		bson.M{"_id": device.ID},
		bson.M{
			"$setOnInsert": bson.M{
				"threat_level": model.ThreatLevelLow,
				"created_ts":   now,
			},
			"$set": bson.M{
				"platform":        device.Platform,
				"app_version":     device.AppVersion,
				"security_config": device.SecurityConfig,
				"is_online":       true,
				"last_seen_ts":    now,
				"updated_ts":      now,
			},
		},
		findOneAndUpdateOpts,
	)

	stored := &model.Device{}
	if err := res.Decode(stored); err != nil {
		return nil, err
	}
	return stored, nil
}

// GetDevice returns a device
func (db *DataStoreMongo) GetDevice(
	ctx context.Context,
	deviceID string,
) (*model.Device, error) {
	coll := db.collection(DevicesCollectionName)

	cur := coll.FindOne(ctx, bson.M{"_id": deviceID})

	device := &model.Device{}
	if err := cur.Decode(device); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return device, nil
}

// DeleteDevice deletes a device
func (db *DataStoreMongo) DeleteDevice(ctx context.Context, deviceID string) error {
	coll := db.collection(DevicesCollectionName)

	_, err := coll.DeleteOne(ctx, bson.M{"_id": deviceID})
	return err
}

// SetDevicePresence updates the online flag and last-seen timestamp
func (db *DataStoreMongo) SetDevicePresence(
	ctx context.Context,
	deviceID string,
	online bool,
	lastSeen time.Time,
) error {
	coll := db.collection(DevicesCollectionName)

	_, err := coll.UpdateOne(ctx,
		bson.M{"_id": deviceID},
		bson.M{
			"$set": bson.M{
				"is_online":    online,
				"last_seen_ts": lastSeen,
				"updated_ts":   time.Now().UTC(),
			},
		},
	)
	return err
}

// SetThreatLevel updates the threat level of a device
func (db *DataStoreMongo) SetThreatLevel(ctx context.Context, deviceID, level string) error {
	coll := db.collection(DevicesCollectionName)

	_, err := coll.UpdateOne(ctx,
		bson.M{"_id": deviceID},
		bson.M{
			"$set": bson.M{
				"threat_level": level,
				"updated_ts":   time.Now().UTC(),
			},
		},
	)
	return err
}

func deviceFilterQuery(filter model.DeviceFilter) bson.M {
	query := bson.M{}
	if filter.IsOnline != nil {
		query["is_online"] = *filter.IsOnline
	}
	if filter.Platform != "" {
		query["platform"] = filter.Platform
	}
	if filter.ThreatLevel != "" {
		query["threat_level"] = filter.ThreatLevel
	}
	if filter.Search != "" {
		query["_id"] = primitive.Regex{
			Pattern: regexQuoteMeta(filter.Search),
			Options: "i",
		}
	}
	return query
}

// regexQuoteMeta escapes regex metacharacters so a device-id search is a
// literal substring match
func regexQuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(special, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ListDevices returns one page of devices matching the filter together
// with the total match count
func (db *DataStoreMongo) ListDevices(
	ctx context.Context,
	filter model.DeviceFilter,
	page model.Pagination,
) ([]model.Device, int64, error) {
	coll := db.collection(DevicesCollectionName)
	query := deviceFilterQuery(filter)

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	findOpts := mopts.Find().
		SetSort(bson.D{{Key: "created_ts", Value: -1}}).
		SetSkip((page.Page - 1) * page.PerPage).
		SetLimit(page.PerPage)
	cur, err := coll.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	devices := []model.Device{}
	if err := cur.All(ctx, &devices); err != nil {
		return nil, 0, err
	}
	return devices, total, nil
}

// CountDevices counts devices matching the filter
func (db *DataStoreMongo) CountDevices(
	ctx context.Context,
	filter model.DeviceFilter,
) (int64, error) {
	coll := db.collection(DevicesCollectionName)
	return coll.CountDocuments(ctx, deviceFilterQuery(filter))
}

// AggregateDevices returns device counts grouped by the given field
func (db *DataStoreMongo) AggregateDevices(
	ctx context.Context,
	field string,
) (map[string]int64, error) {
	coll := db.collection(DevicesCollectionName)

	cur, err := coll.Aggregate(ctx, []bson.M{
		{"$group": bson.M{
			"_id":   "$" + field,
			"count": bson.M{"$sum": 1},
		}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	result := map[string]int64{}
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		result[row.ID] = row.Count
	}
	return result, cur.Err()
}

// ReplaceTokens removes all token records of a device and inserts the new
// pair in a single transaction, so the device never observes a state with
// both pairs alive.
func (db *DataStoreMongo) ReplaceTokens(
	ctx context.Context,
	deviceID string,
	tokens []model.DeviceToken,
) error {
	coll := db.collection(TokensCollectionName)

	session, err := db.client.StartSession()
	if err != nil {
		return errors.Wrap(err, "failed to start mongo session")
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx,
		func(sesctx mongo.SessionContext) (interface{}, error) {
			if _, err := coll.DeleteMany(sesctx,
				bson.M{"device_id": deviceID}); err != nil {
				return nil, err
			}
			if len(tokens) == 0 {
				return nil, nil
			}
			docs := make([]interface{}, len(tokens))
			for i := range tokens {
				docs[i] = tokens[i]
			}
			return coll.InsertMany(sesctx, docs)
		},
	)
	return err
}

// GetToken returns a live token record matching the device, type and
// token string; expired records are treated as absent
func (db *DataStoreMongo) GetToken(
	ctx context.Context,
	deviceID, tokenType, token string,
) (*model.DeviceToken, error) {
	coll := db.collection(TokensCollectionName)

	cur := coll.FindOne(ctx, bson.M{
		"device_id":  deviceID,
		"type":       tokenType,
		"token":      token,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	})

	record := &model.DeviceToken{}
	if err := cur.Decode(record); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, store.ErrTokenNotFound
		}
		return nil, err
	}
	return record, nil
}

// DeleteTokens removes all token records of a device
func (db *DataStoreMongo) DeleteTokens(ctx context.Context, deviceID string) error {
	coll := db.collection(TokensCollectionName)

	_, err := coll.DeleteMany(ctx, bson.M{"device_id": deviceID})
	return err
}

// InsertConfig inserts a new configuration version. The unique
// (device_id, version) index rejects concurrent appends of the same
// version.
func (db *DataStoreMongo) InsertConfig(
	ctx context.Context,
	config *model.DeviceConfig,
) error {
	coll := db.collection(ConfigsCollectionName)

	_, err := coll.InsertOne(ctx, config)
	return err
}

// GetLatestConfig returns the configuration row with the highest version
// for a device, or nil when the device has no configuration yet
func (db *DataStoreMongo) GetLatestConfig(
	ctx context.Context,
	deviceID string,
) (*model.DeviceConfig, error) {
	coll := db.collection(ConfigsCollectionName)

	findOneOpts := mopts.FindOne().
		SetSort(bson.D{{Key: "version", Value: -1}})
	cur := coll.FindOne(ctx, bson.M{"device_id": deviceID}, findOneOpts)

	config := &model.DeviceConfig{}
	if err := cur.Decode(config); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return config, nil
}

// InsertCommand inserts a new command
func (db *DataStoreMongo) InsertCommand(ctx context.Context, cmd *model.Command) error {
	coll := db.collection(CommandsCollectionName)

	_, err := coll.InsertOne(ctx, cmd)
	return err
}

// GetCommand returns a command by id
func (db *DataStoreMongo) GetCommand(
	ctx context.Context,
	commandID string,
) (*model.Command, error) {
	coll := db.collection(CommandsCollectionName)

	cur := coll.FindOne(ctx, bson.M{"_id": commandID})

	cmd := &model.Command{}
	if err := cur.Decode(cmd); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, store.ErrCommandNotFound
		}
		return nil, err
	}
	return cmd, nil
}

// GetPendingCommands returns the pending commands of a device, oldest
// first; it does not mutate command state
func (db *DataStoreMongo) GetPendingCommands(
	ctx context.Context,
	deviceID string,
) ([]model.Command, error) {
	coll := db.collection(CommandsCollectionName)

	findOpts := mopts.Find().
		SetSort(bson.D{{Key: "created_ts", Value: 1}})
	cur, err := coll.Find(ctx, bson.M{
		"device_id": deviceID,
		"status":    model.CommandStatusPending,
	}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	commands := []model.Command{}
	if err := cur.All(ctx, &commands); err != nil {
		return nil, err
	}
	return commands, nil
}

// CountPendingCommands counts the pending commands of a device
func (db *DataStoreMongo) CountPendingCommands(
	ctx context.Context,
	deviceID string,
) (int64, error) {
	coll := db.collection(CommandsCollectionName)

	return coll.CountDocuments(ctx, bson.M{
		"device_id": deviceID,
		"status":    model.CommandStatusPending,
	})
}

// SetCommandResult transitions a pending command to its terminal status.
// It reports whether a transition happened; acknowledging a command that
// is missing, already terminal or owned by another device matches no
// document.
func (db *DataStoreMongo) SetCommandResult(
	ctx context.Context,
	deviceID, commandID, status, result string,
	executedTs time.Time,
) (bool, error) {
	coll := db.collection(CommandsCollectionName)

	res, err := coll.UpdateOne(ctx,
		bson.M{
			"_id":       commandID,
			"device_id": deviceID,
			"status":    model.CommandStatusPending,
		},
		bson.M{
			"$set": bson.M{
				"status":      status,
				"result":      result,
				"executed_ts": executedTs,
			},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// AggregateCommandOutcomes returns command counts grouped by name and
// status
func (db *DataStoreMongo) AggregateCommandOutcomes(
	ctx context.Context,
) ([]model.CommandOutcome, error) {
	coll := db.collection(CommandsCollectionName)

	cur, err := coll.Aggregate(ctx, []bson.M{
		{"$group": bson.M{
			"_id": bson.M{
				"command": "$command",
				"status":  "$status",
			},
			"count": bson.M{"$sum": 1},
		}},
		{"$project": bson.M{
			"_id":     0,
			"command": "$_id.command",
			"status":  "$_id.status",
			"count":   1,
		}},
		{"$sort": bson.D{
			{Key: "command", Value: 1},
			{Key: "status", Value: 1},
		}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	outcomes := []model.CommandOutcome{}
	if err := cur.All(ctx, &outcomes); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// InsertSyncLog appends a sync log entry
func (db *DataStoreMongo) InsertSyncLog(ctx context.Context, entry *model.SyncLog) error {
	coll := db.collection(SyncLogsCollectionName)

	_, err := coll.InsertOne(ctx, entry)
	return err
}

// InsertStatusReport appends a status report
func (db *DataStoreMongo) InsertStatusReport(
	ctx context.Context,
	report *model.StatusReport,
) error {
	coll := db.collection(StatusReportsCollectionName)

	_, err := coll.InsertOne(ctx, report)
	return err
}

// RecentActivity merges the most recent sync, command and status entries
// into a single feed, newest first
func (db *DataStoreMongo) RecentActivity(
	ctx context.Context,
	limit int,
) ([]model.Activity, error) {
	activities := []model.Activity{}

	findOpts := mopts.Find().
		SetSort(bson.D{{Key: "created_ts", Value: -1}}).
		SetLimit(int64(limit))

	syncCur, err := db.collection(SyncLogsCollectionName).
		Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	entries := []model.SyncLog{}
	if err := syncCur.All(ctx, &entries); err != nil {
		return nil, err
	}
	for _, e := range entries {
		activities = append(activities, model.Activity{
			Type:      model.ActivityTypeSync,
			DeviceID:  e.DeviceID,
			CreatedTs: e.CreatedTs,
		})
	}

	cmdCur, err := db.collection(CommandsCollectionName).
		Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	commands := []model.Command{}
	if err := cmdCur.All(ctx, &commands); err != nil {
		return nil, err
	}
	for _, c := range commands {
		activities = append(activities, model.Activity{
			Type:      model.ActivityTypeCommand,
			DeviceID:  c.DeviceID,
			Detail:    c.Command,
			CreatedTs: c.CreatedTs,
		})
	}

	reportCur, err := db.collection(StatusReportsCollectionName).
		Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	reports := []model.StatusReport{}
	if err := reportCur.All(ctx, &reports); err != nil {
		return nil, err
	}
	for _, r := range reports {
		activities = append(activities, model.Activity{
			Type:      model.ActivityTypeStatus,
			DeviceID:  r.DeviceID,
			Detail:    r.ThreatLevel,
			CreatedTs: r.CreatedTs,
		})
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].CreatedTs.After(activities[j].CreatedTs)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

// CountsSince counts syncs, status reports and commands created after the
// given instant
func (db *DataStoreMongo) CountsSince(
	ctx context.Context,
	since time.Time,
) (syncs, reports, commands int64, err error) {
	query := bson.M{"created_ts": bson.M{"$gte": since}}

	syncs, err = db.collection(SyncLogsCollectionName).CountDocuments(ctx, query)
	if err != nil {
		return 0, 0, 0, err
	}
	reports, err = db.collection(StatusReportsCollectionName).CountDocuments(ctx, query)
	if err != nil {
		return 0, 0, 0, err
	}
	commands, err = db.collection(CommandsCollectionName).CountDocuments(ctx, query)
	if err != nil {
		return 0, 0, 0, err
	}
	return syncs, reports, commands, nil
}

// Close disconnects the client
func (db *DataStoreMongo) Close() error {
	ctx := context.Background()
	disconnectClient(ctx, db.client)
	return nil
}

func (db *DataStoreMongo) dropDatabase() error {
	ctx := context.Background()
	err := db.client.Database(db.dbName).Drop(ctx)
	return err
}
