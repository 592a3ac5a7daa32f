/*
Package mongodataset provides a dataset backend that stores rows as
documents of a MongoDB collection, with a field per feature.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/impurity/feature"
	"github.com/pbanos/impurity/value"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

/*
DefaultCollectionName is the collection used when none is given
*/
const DefaultCollectionName = "samples"

/*
Collection is a dataset.Reader and dataset.ClassCounter backed by a MongoDB
collection to which rows can also be written.
*/
type Collection struct {
	session  *mgo.Session
	name     string
	features []feature.Feature
}

/*
Dial takes a MongoDB connection URL and returns a session for it, or an error
if the server cannot be reached.
*/
func Dial(url string) (*mgo.Session, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB: %v", err)
	}
	return session, nil
}

/*
Open takes a MongoDB database session, a collection name and a slice of
features and returns a Collection working on the collection with that name
on the default database for the session. It ensures an index exists for
every feature, returning an error if it cannot be created or a feature name
cannot be used as document field.
*/
func Open(session *mgo.Session, collection string, features []feature.Feature) (*Collection, error) {
	if collection == "" {
		collection = DefaultCollectionName
	}
	c := &Collection{session, collection, features}
	err := c.ensureIndexes()
	if err != nil {
		return nil, err
	}
	return c, nil
}

/*
Write takes a context and a slice of rows and inserts a document per row
on the collection. Undefined values are left out of the documents.
*/
func (c *Collection) Write(ctx context.Context, rows [][]value.Value) (int, error) {
	docs := make([]interface{}, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(c.features) {
			return 0, fmt.Errorf("row %d: expected %d values, got %d", i, len(c.features), len(row))
		}
		doc := make(bson.M)
		for j, f := range c.features {
			if row[j].Defined() {
				doc[f.Name()] = row[j].Interface()
			}
		}
		docs = append(docs, doc)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	err := c.collection().Insert(docs...)
	if err != nil {
		return 0, fmt.Errorf("inserting documents on %s: %v", c.name, err)
	}
	return len(rows), nil
}

/*
Read implements dataset.Reader, streaming the documents of the collection
as rows.
*/
func (c *Collection) Read(ctx context.Context) (<-chan value.Row, <-chan error) {
	rows := make(chan value.Row)
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		defer close(rows)
		var doc bson.M
		iter := c.collection().Find(nil).Iter()
		defer iter.Close()
		for iter.Next(&doc) {
			row, err := c.rowFromDocument(doc)
			if err != nil {
				errs <- err
				return
			}
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			case rows <- row:
			}
			doc = nil
		}
		if err := iter.Err(); err != nil {
			errs <- err
		}
	}()
	return rows, errs
}

/*
CountClasses implements dataset.ClassCounter with an aggregation pipeline
grouping the documents by the field of the given feature. Documents missing
the field are counted as undefined values. Values the feature does not
accept result in an error.
*/
func (c *Collection) CountClasses(ctx context.Context, f feature.Feature) (map[value.Value]int, error) {
	iter := c.collection().Pipe([]bson.M{{"$group": bson.M{"_id": fmt.Sprintf("$%s", f.Name()), "count": bson.M{"$sum": 1}}}}).Iter()
	defer iter.Close()
	var doc bson.M
	result := make(map[value.Value]int)
	for iter.Next(&doc) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		count, ok := doc["count"].(int)
		if !ok {
			return nil, fmt.Errorf("counting feature values: mongo aggregation query returned a %T instead of an int as count", doc["count"])
		}
		v, err := value.FromInterface(doc["_id"])
		if err != nil {
			return nil, fmt.Errorf("counting feature values: %v", err)
		}
		if _, err = f.Valid(v); err != nil {
			return nil, fmt.Errorf("counting feature values: %v", err)
		}
		result[v] += count
		doc = nil
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Collection) rowFromDocument(doc bson.M) (value.Row, error) {
	row := make(value.Row, len(c.features))
	for i, f := range c.features {
		v, err := value.FromInterface(doc[f.Name()])
		if err != nil {
			return nil, fmt.Errorf("reading field %s of document %v: %v", f.Name(), doc["_id"], err)
		}
		row[i] = v
	}
	return row, nil
}

func (c *Collection) ensureIndexes() error {
	for _, f := range c.features {
		fName := f.Name()
		if fName == "_id" {
			return fmt.Errorf("invalid feature name %q: reserved collection field", "_id")
		}
		if strings.ContainsAny(fName, ".$") {
			return fmt.Errorf("invalid feature name %q: contains reserved characters %q or %q", fName, ".", "$")
		}
		index := mgo.Index{
			Key:        []string{fName},
			Background: true,
			Sparse:     true,
		}
		err := c.collection().EnsureIndex(index)
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Collection) collection() *mgo.Collection {
	return c.session.DB("").C(c.name)
}
