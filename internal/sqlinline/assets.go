package sqlinline

const QInsertAsset = `--sql 2d3f63c2-a03d-41df-b530-560c230dd31a
insert into assets(id, user_id, job_id, kind, storage_key, mime, bytes, width, height, created_at)
values (gen_random_uuid(), $1::uuid, $2::uuid, 'GENERATED', $3::text, $4::text, $5::bigint, $6::int, $7::int, now())
returning id;
`

const QInsertUploadedAsset = `--sql da265926-abdc-4db7-8eb1-c79a2dec8863
insert into assets(id, user_id, job_id, kind, storage_key, mime, bytes, width, height, created_at)
values (gen_random_uuid(), $1::uuid, null, 'ORIGINAL', $2::text, $3::text, $4::bigint, 0, 0, now())
returning id;
`

const QListAssetsByUser = `--sql b0c6b53c-9a7d-40c6-b56b-96bdf11e3655
select id, job_id, kind, storage_key, mime, bytes, width, height, created_at
from assets
where user_id = $1::uuid
order by created_at desc
limit $2::int offset $3::int;
`

const QSelectAssetByID = `--sql e46f0583-49ac-4c55-aa4b-d698b1b87d01
select id, user_id, kind, storage_key, mime, bytes, width, height, created_at
from assets
where id = $1::uuid
limit 1;
`
